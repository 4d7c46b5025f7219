package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajorau/saveenergy/internal/api"
	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/internal/store"
	"github.com/hajorau/saveenergy/internal/store/drivers/sqlite"
	"github.com/hajorau/saveenergy/pkg/cryptox"
	"github.com/hajorau/saveenergy/pkg/slogx"
	"github.com/hajorau/saveenergy/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// devSecret is used when APP_SECRET is unset outside prod. Tokens signed
// with it do not survive restarts of differently-configured instances.
const devSecret = "saveenergy-dev-secret"

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *tokenx.Codec

	userService  *service.UserService
	calcService  *service.CalcService
	adminService *service.AdminService

	server *http.Server
	router *api.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "saveenergy",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	secret := cfg.AppSecret
	if secret == "" {
		if cfg.Env == "prod" {
			return nil, errors.New("APP_SECRET is required in prod")
		}
		app.logger.Warn("APP_SECRET not set, using dev default; tokens are not secure")
		secret = devSecret
	}
	app.tokens = &tokenx.Codec{Secret: []byte(secret), TTL: cfg.TokenTTL}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("saveenergy service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down saveenergy service...")

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

	app.logger.Info("saveenergy service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db, Tokens: app.tokens}
	app.calcService = &service.CalcService{Store: app.db}
	app.adminService = &service.AdminService{Store: app.db, Secret: app.cfg.AdminSecret}

	if app.cfg.AdminSecret == "" {
		app.logger.Info("ADMIN_SECRET not set, admin reset disabled")
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := api.NewRouter(
		app.tokens,
		app.cfg.FrontendOrigin,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.CalcService = app.calcService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
