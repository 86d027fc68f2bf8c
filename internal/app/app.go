// Package app wires configuration, logging, services, and the HTTP router
// into a runnable application.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"assetpulse/internal/config"
	apperrors "assetpulse/internal/errors"
	"assetpulse/internal/exporter"
	"assetpulse/internal/infrastructure"
	custommw "assetpulse/internal/middleware"
	"assetpulse/internal/observability"
	"assetpulse/internal/services"
	handlers "assetpulse/internal/transport/http"
	"assetpulse/internal/validation"
	"assetpulse/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Metrics          *observability.PipelineMetrics
	Logger           *slog.Logger
	FrontendFS       fs.FS
}

// NewApplication creates a new application instance with dependency
// injection. frontendFS holds the embedded dashboard page; nil disables
// static serving.
func NewApplication(configFile string, frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", contracts.AppName),
		slog.String("version", contracts.Version),
		slog.String("source_file", cfg.Paths.SourceFile))

	validator := validation.NewFileValidator(logger)
	for _, dir := range []string{cfg.Paths.ExportDir, cfg.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := validator.ValidateOutputDirectory(dir); err != nil {
			return nil, fmt.Errorf("failed to prepare directories: %w", err)
		}
	}

	// A broken source file is not fatal at startup: the dashboard serves
	// a blocking error until the file appears and a refresh re-runs
	if err := validator.ValidateSourceFile(cfg.Paths.SourceFile); err != nil {
		logger.Warn("Source spreadsheet not usable",
			slog.String("path", cfg.Paths.SourceFile),
			slog.String("reason", err.Error()),
			slog.String("action", "dashboard will report source unavailable"))
	}

	rates, err := config.LoadReferenceRates(cfg.Paths.RatesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference rates: %w", err)
	}
	logger.Info("Reference rates loaded", slog.Int("rate_count", rates.Len()))

	app := &Application{
		Config:     cfg,
		Logger:     logger,
		FrontendFS: frontendFS,
		Metrics:    observability.NewPipelineMetrics(),
	}

	app.DashboardService = services.NewDashboardService(services.DashboardServiceConfig{
		SourcePath: cfg.Paths.SourceFile,
		Rates:      rates,
		Cache:      services.NewMemorySnapshotCache(),
		Metrics:    app.Metrics,
	}, logger)

	app.HealthService = services.NewHealthService(contracts.Version, cfg.Paths, logger)

	app.setupRouter()
	app.setupServer()

	return app, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.CORS)

	if a.Config.Limits.RateLimitEnabled {
		r.Use(custommw.NewRateLimiter(a.Config.Limits.RPS, a.Config.Limits.Burst, a.Logger).Handler)
	}

	errorHandler := apperrors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())

		exportHandler := handlers.NewExportHandler(a.DashboardService, exporter.New(a.Logger), a.Logger, errorHandler)
		r.Mount("/export", exportHandler.Routes())

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
	})

	// Prometheus endpoint outside the rate-limited group
	r.Handle("/metrics", a.Metrics.Handler())

	if a.FrontendFS != nil {
		r.Handle("/*", http.FileServer(http.FS(a.FrontendFS)))
	}

	a.Router = r
}

// setupServer configures the HTTP server with timeouts
func (a *Application) setupServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the server and blocks until an interrupt signal arrives, then
// shuts down gracefully within the configured timeout.
func (a *Application) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("dashboard", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		a.Logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown stops the HTTP server gracefully and closes the log file.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.Info("Shutting down HTTP server",
		slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("Failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.Info("Shutdown complete")
	return nil
}

// WaitForReady polls the health endpoint until the server responds or the
// context expires. Used by tests.
func (a *Application) WaitForReady(ctx context.Context) error {
	url := fmt.Sprintf("http://localhost:%d/api/health", a.Config.Server.Port)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err == nil {
				resp.Body.Close()
				return nil
			}
		}
	}
}
