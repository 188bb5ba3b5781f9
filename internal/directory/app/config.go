package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// maxTokenTTL bounds JWT_EXPIRATION_MS well below time.Duration overflow.
const maxTokenTTL = 365 * 24 * time.Hour

type Config struct {
	// JWTSecret signs session tokens. Checked by jwtx when the codec is
	// built; a weak or missing secret stops startup.
	JWTSecret       string `env:"JWT_SECRET"`
	JWTExpirationMS int64  `env:"JWT_EXPIRATION_MS" envDefault:"86400000"`
	JWTIssuer       string `env:"JWT_ISSUER" envDefault:"hiddengems"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`     // sqlite or postgres
	DatabaseFile   string `env:"DATABASE_FILE" envDefault:"directory.db"` // sqlite only
	DatabaseURL    string `env:"DATABASE_URL"`                            // postgres only
	PepperFile     string `env:"PEPPER_FILE" envDefault:"pepper"`         // created on first start
	SeedData       bool   `env:"SEED_DATA" envDefault:"true"`             // insert sample businesses into an empty directory

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// CORSAllowedOrigins lists the browser origins allowed to call the API.
	// Empty disables CORS handling.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// RateLimits starts from httpx.DefaultRateLimits; any
	// RATELIMIT_<PROFILE>_{REQUESTS,WINDOW,BURST} overrides one value.
	RateLimits httpx.RateLimits `envPrefix:"RATELIMIT_"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return loadConfig(nil)
}

// loadConfig reads from environ, or the process environment when nil.
func loadConfig(environ map[string]string) (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	origins := cfg.CORSAllowedOrigins[:0]
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSAllowedOrigins = origins

	return cfg, nil
}

// TokenTTL is the session token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationMS) * time.Millisecond
}

// Validate reports every setting that cannot work. The signing secret is
// left to jwtx.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", c.DatabaseDriver))
	}

	if c.JWTExpirationMS <= 0 || c.JWTExpirationMS > maxTokenTTL.Milliseconds() {
		errs = append(errs, fmt.Errorf("JWT_EXPIRATION_MS must be between 1 and %d, got %d",
			maxTokenTTL.Milliseconds(), c.JWTExpirationMS))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.ShutdownGracePeriod < 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_GRACE_PERIOD must not be negative, got %s", c.ShutdownGracePeriod))
	}
	if c.PepperFile == "" {
		errs = append(errs, errors.New("PEPPER_FILE is required"))
	}
	if err := c.RateLimits.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("RATELIMIT: %w", err))
	}

	return errors.Join(errs...)
}
