package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/hiddengems/internal/directory/http"
	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store/drivers/postgres"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/hiddengems/pkg/cryptox"
	"github.com/aussiebroadwan/hiddengems/pkg/jwtx"
	"github.com/aussiebroadwan/hiddengems/pkg/metricsx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the directory service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	codec   *jwtx.Codec
	hasher  *cryptox.PasswordHasher
	metrics *metricsx.Metrics

	// Services
	authService     *service.AuthService
	userService     *service.UserService
	businessService *service.BusinessService
	favoriteService *service.FavoriteService
	seedService     *service.SeedService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// A weak signing secret fails with a *jwtx.ConfigurationError before any
// other resource is opened.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "directory-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metricsx.New(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	codec, err := jwtx.NewCodec(jwtx.Options{
		Secret: cfg.JWTSecret,
		TTL:    cfg.TokenTTL(),
		Issuer: cfg.JWTIssuer,
	})
	if err != nil {
		return nil, err
	}
	app.codec = codec

	pepper, err := cryptox.LoadOrGeneratePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	app.initServices()

	if cfg.SeedData {
		if _, err := app.seedService.Seed(slogx.WithContext(ctx, app.logger)); err != nil {
			_ = app.db.Close()
			return nil, err
		}
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("directory service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down directory service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("directory service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.db = db
	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:   app.db,
		Hasher:  app.hasher,
		Codec:   app.codec,
		Metrics: app.metrics,
	}
	app.userService = &service.UserService{Store: app.db}
	app.businessService = &service.BusinessService{Store: app.db}
	app.favoriteService = &service.FavoriteService{
		Store:   app.db,
		Metrics: app.metrics,
	}
	app.seedService = &service.SeedService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	// Wire services to router
	router.RateLimits = app.cfg.RateLimits
	router.AllowedOrigins = app.cfg.CORSAllowedOrigins
	router.AuthService = app.authService
	router.UserService = app.userService
	router.BusinessService = app.businessService
	router.FavoriteService = app.favoriteService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
