package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/skylight-ar/account-service/internal/account/http"
	"github.com/skylight-ar/account-service/internal/account/idp"
	"github.com/skylight-ar/account-service/internal/account/mailer"
	"github.com/skylight-ar/account-service/internal/account/otp"
	"github.com/skylight-ar/account-service/internal/account/service"
	"github.com/skylight-ar/account-service/internal/account/store"
	redisdriver "github.com/skylight-ar/account-service/internal/account/store/drivers/redis"
	"github.com/skylight-ar/account-service/internal/account/store/drivers/sqlite"
	"github.com/skylight-ar/account-service/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the account service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	provider idp.Provider
	sender   mailer.Sender

	// Services
	registrationService *service.RegistrationService
	sessionService      *service.SessionService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "account-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}
	if err := app.initProvider(); err != nil {
		return nil, err
	}
	if err := app.initMailer(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("account service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down account service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("account service stopped")
	return nil
}

// initStore selects and initializes the persistence driver
func (app *Application) initStore() error {
	switch app.cfg.DatabaseDriver {
	case "redis":
		db := redisdriver.NewStore(redisdriver.Config{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		app.db = db
		app.logger.Info("using redis store", "addr", app.cfg.RedisAddr)
		return nil

	case "sqlite":
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

	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
}

// initProvider selects the identity provider adapter
func (app *Application) initProvider() error {
	switch app.cfg.IDPMode {
	case "http":
		if app.cfg.IDPBaseURL == "" || app.cfg.IDPAPIKey == "" {
			return fmt.Errorf("http identity provider requires ACCOUNT_IDP_BASE_URL and ACCOUNT_IDP_API_KEY")
		}
		app.provider = idp.NewHTTPProvider(app.cfg.IDPBaseURL, app.cfg.IDPAPIKey)
		app.logger.Info("using http identity provider", "base_url", app.cfg.IDPBaseURL)
		return nil

	case "local":
		app.provider = idp.NewLocalProvider([]byte(app.cfg.IDPSecret))
		app.logger.Warn("using local in-memory identity provider, accounts do not survive a restart")
		return nil

	default:
		return fmt.Errorf("unknown identity provider mode %q", app.cfg.IDPMode)
	}
}

// initMailer selects the mail delivery adapter
func (app *Application) initMailer() error {
	switch app.cfg.MailMode {
	case "api":
		if app.cfg.MailAPIURL == "" || app.cfg.MailAPIKey == "" {
			return fmt.Errorf("api mail mode requires ACCOUNT_MAIL_API_URL and ACCOUNT_MAIL_API_KEY")
		}
		app.sender = mailer.NewAPISender(app.cfg.MailAPIURL, app.cfg.MailAPIKey, app.cfg.MailFrom)
		app.logger.Info("using api mail delivery")
		return nil

	case "smtp":
		smtpCfg, err := mailer.SMTPConfigFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load smtp config: %w", err)
		}
		app.sender = mailer.NewSMTPSender(smtpCfg)
		app.logger.Info("using smtp mail delivery", "host", smtpCfg.Host)
		return nil

	case "log":
		app.sender = &mailer.LogSender{Logger: app.logger}
		app.logger.Warn("using log mail delivery, passcodes are written to the log")
		return nil

	default:
		return fmt.Errorf("unknown mail mode %q", app.cfg.MailMode)
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	otpStore := otp.NewStore(app.db.OTPCodes()).
		WithTTL(app.cfg.OTPTTL).
		WithMaxAttempts(app.cfg.OTPMaxAttempts)

	app.registrationService = service.NewRegistrationService(
		app.provider,
		app.db,
		otpStore,
		app.sender,
		app.logger,
	)
	app.registrationService.CallTimeout = app.cfg.CallTimeout
	app.registrationService.FlowTTL = app.cfg.FlowTTL

	app.sessionService = service.NewSessionService(app.provider, app.logger)
	app.sessionService.CallTimeout = app.cfg.CallTimeout

	app.housekeepingService = service.NewHousekeepingService(
		app.registrationService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.RegistrationService = app.registrationService
	router.SessionService = app.sessionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
