package app

import (
	"math"
	"testing"
	"time"

	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(map[string]string{})
	require.NoError(t, err)

	require.Empty(t, cfg.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL())
	require.Equal(t, "hiddengems", cfg.JWTIssuer)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "directory.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.True(t, cfg.SeedData)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Empty(t, cfg.CORSAllowedOrigins)
	require.Equal(t, httpx.DefaultRateLimits(), cfg.RateLimits)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(map[string]string{
		"JWT_SECRET":                "0123456789abcdef0123456789abcdef",
		"JWT_EXPIRATION_MS":         "60000",
		"DATABASE_DRIVER":           " Postgres ",
		"DATABASE_URL":              "postgres://u:p@db/directory",
		"SEED_DATA":                 "false",
		"PORT":                      "9090",
		"CORS_ALLOWED_ORIGINS":      "http://localhost:5173, https://gems.example.com,,",
		"RATELIMIT_STRICT_REQUESTS": "1000",
		"RATELIMIT_STRICT_WINDOW":   "30s",
		"RATELIMIT_MODERATE_BURST":  "7",
		"SHUTDOWN_GRACE_PERIOD":     "1s",
	})
	require.NoError(t, err)

	require.Equal(t, time.Minute, cfg.TokenTTL())
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.False(t, cfg.SeedData)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"http://localhost:5173", "https://gems.example.com"}, cfg.CORSAllowedOrigins)

	require.Equal(t, 1000, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.RateLimits.Strict.Window)
	require.Equal(t, httpx.StrictLimit.Burst, cfg.RateLimits.Strict.Burst)
	require.Equal(t, 7, cfg.RateLimits.Moderate.Burst)
	require.Equal(t, httpx.ModerateLimit.RequestsPerWindow, cfg.RateLimits.Moderate.RequestsPerWindow)
	require.Equal(t, httpx.PublicLimit, cfg.RateLimits.Public)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	_, err := loadConfig(map[string]string{"PORT": "eighty"})
	require.Error(t, err)

	_, err = loadConfig(map[string]string{"RATELIMIT_PUBLIC_WINDOW": "often"})
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	base, err := loadConfig(map[string]string{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "DATABASE_DRIVER"},
		{"postgres without url", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "DATABASE_URL"},
		{"sqlite without file", func(c *Config) { c.DatabaseFile = "" }, "DATABASE_FILE"},
		{"zero expiry", func(c *Config) { c.JWTExpirationMS = 0 }, "JWT_EXPIRATION_MS"},
		{"expiry past a year", func(c *Config) { c.JWTExpirationMS = maxTokenTTL.Milliseconds() + 1 }, "JWT_EXPIRATION_MS"},
		{"overflowing expiry", func(c *Config) { c.JWTExpirationMS = math.MaxInt64 }, "JWT_EXPIRATION_MS"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"no pepper file", func(c *Config) { c.PepperFile = "" }, "PEPPER_FILE"},
		{"zero burst", func(c *Config) { c.RateLimits.Lenient.Burst = 0 }, "lenient"},
	}

	longest := base
	longest.JWTExpirationMS = maxTokenTTL.Milliseconds()
	require.NoError(t, longest.Validate())
	require.Equal(t, maxTokenTTL, longest.TokenTTL())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
