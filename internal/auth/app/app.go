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

	"github.com/getsentry/sentry-go"

	httpapi "github.com/tracehealth/trace/internal/auth/http"
	"github.com/tracehealth/trace/internal/auth/notify"
	"github.com/tracehealth/trace/internal/auth/otp"
	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/internal/auth/store/drivers/postgres"
	"github.com/tracehealth/trace/internal/auth/store/drivers/sqlite"
	"github.com/tracehealth/trace/pkg/cryptox"
	"github.com/tracehealth/trace/pkg/jwtx"
	"github.com/tracehealth/trace/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	hasher     *cryptox.PasswordHasher
	notifier   service.Notifier
	sentry     bool

	// Services
	signupService       *service.SignupService
	loginService        *service.LoginService
	resetService        *service.ResetService
	adminService        *service.AdminService
	provisionService    *service.ProvisionService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// Option customizes an Application before its services are built.
type Option func(*Application)

// WithNotifier replaces the configured mail transport.
func WithNotifier(n service.Notifier) Option {
	return func(app *Application) { app.notifier = n }
}

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(app *Application) { app.logger = l }
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "trace-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	app.initSentry()

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitAuthKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	if app.notifier == nil {
		app.notifier = app.newNotifier()
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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
		app.housekeepingService.Stop()
		_ = app.Close()
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Close releases the database and flushes pending error reports. It is the
// whole teardown for callers that never called Run.
func (app *Application) Close() error {
	if app.sentry {
		sentry.Flush(2 * time.Second)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// Handler returns the HTTP handler with the full middleware chain.
func (app *Application) Handler() http.Handler { return app.router }

// Store returns the credential store.
func (app *Application) Store() store.Store { return app.db }

// Provisioner returns the service that creates admin identities.
func (app *Application) Provisioner() *service.ProvisionService { return app.provisionService }

// Housekeeping returns the pending-record sweeper. It is not started until Run.
func (app *Application) Housekeeping() *service.HousekeepingService {
	return app.housekeepingService
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

func (app *Application) initSentry() {
	if app.cfg.SentryDSN == "" {
		app.logger.Info("SENTRY_DSN not set, error reporting disabled")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         app.cfg.SentryDSN,
		Environment: app.cfg.Env,
		Release:     BuildVersion,
	})
	if err != nil {
		app.logger.Error("sentry initialization failed", "error", err)
		return
	}
	app.sentry = true
	app.logger.Info("sentry error reporting enabled")
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// newNotifier builds the configured mail transport.
func (app *Application) newNotifier() service.Notifier {
	switch app.cfg.MailTransport {
	case "smtp":
		app.logger.Info("mail transport: smtp", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
		return &notify.SMTPNotifier{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
			Timeout:  app.cfg.MailTimeout,
		}
	case "mailtrap":
		app.logger.Info("mail transport: mailtrap")
		return notify.NewMailtrapNotifier(
			app.cfg.MailtrapAPIKey,
			app.cfg.MailtrapAPIURL,
			app.cfg.MailFrom,
			app.cfg.MailTimeout,
		)
	default:
		app.logger.Warn("mail transport: log, emails are not delivered")
		return notify.LogNotifier{ShowBody: app.cfg.Env == "dev"}
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	resolver := &service.IdentityResolver{Store: app.db}
	validator := service.Validator{CheckDeliverability: app.cfg.CheckEmailDeliverability}
	issuer := otp.NewIssuer()

	app.signupService = &service.SignupService{
		Store:     app.db,
		Resolver:  resolver,
		Hasher:    app.hasher,
		Notifier:  app.notifier,
		OTP:       issuer,
		Validator: validator,
	}
	app.loginService = &service.LoginService{
		Resolver: resolver,
		Hasher:   app.hasher,
		Sessions: &service.SessionIssuer{
			Signer: app.keyManager,
			TTL:    jwtx.DefaultSessionTTL,
		},
	}
	app.resetService = &service.ResetService{
		Store:     app.db,
		Resolver:  resolver,
		Hasher:    app.hasher,
		Notifier:  app.notifier,
		OTP:       issuer,
		Validator: validator,
	}
	app.adminService = &service.AdminService{Store: app.db}
	app.provisionService = &service.ProvisionService{
		Store:  app.db,
		Hasher: app.hasher,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.PendingRecordTTL,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.SignupService = app.signupService
	router.LoginService = app.loginService
	router.ResetService = app.resetService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
