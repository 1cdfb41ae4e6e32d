package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/events"
	"backoffice/internal/handler"
	"backoffice/internal/normalize"
	"backoffice/internal/repository"
	"backoffice/internal/router"
	"backoffice/internal/selection"
	"backoffice/internal/service"
	"backoffice/internal/session"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("store_api", cfg.Upstream.BaseURL).Msg("starting backoffice server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store API client and session
	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store API client: %w", err)
	}

	sessions := session.NewStore(client, logger)
	sessions.OnExpired(func() {
		client.ResetSession()
		logger.Warn().Msg("store API session expired, console redirected to login")
	})
	client.OnUnauthorized(func() { sessions.Expire() })

	go func() {
		verifyCtx, verifyCancel := context.WithTimeout(ctx, cfg.Upstream.Timeout)
		defer verifyCancel()
		// An unverified session simply starts unauthenticated.
		_ = sessions.Verify(verifyCtx)
	}()

	// Transition journal
	journal, closeJournal, err := newJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	// Status-change events
	publisher, err := events.New(cfg.Events, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Selection files with S3 and local fallback
	selectionLoader := newSelectionLoader(ctx, cfg.Selection, logger)

	// Initialize services
	normalizer := normalize.NewNormalizer(logger)
	board := service.NewOrderBoard()
	policy := service.NewTransitionPolicy(cfg.Orders.TransitionMode)
	logger.Info().Str("mode", policy.Name()).Msg("order transition policy selected")

	orderService := service.NewOrderService(client, normalizer, board, policy, journal, publisher, logger)
	productService := service.NewProductService(client, logger)
	userService := service.NewUserService(client, logger)
	taxService := service.NewTaxService(client, selectionLoader, logger)
	dashboardService := service.NewDashboardService(ctx, client, normalizer, cfg.Dashboard.TelemetryDelay, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Session:   handler.NewSessionHandler(sessions, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Product:   handler.NewProductHandler(productService, taxService, logger),
		Tax:       handler.NewTaxHandler(taxService, logger),
		User:      handler.NewUserHandler(userService, logger),
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
	}, sessions, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Pending dashboard telemetry becomes a no-op from here on.
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newJournal opens the Postgres journal when enabled, migrating its schema first.
func newJournal(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.StatusChangeRepository, func(), error) {
	if !cfg.Database.Enabled {
		logger.Info().Msg("transition journal disabled")
		return repository.NewNopStatusChangeRepository(), func() {}, nil
	}

	if err := database.Migrate(ctx, cfg.Database.ConnectionString(), logger); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repository.NewStatusChangeRepository(pool, logger), pool.Close, nil
}

func newSelectionLoader(ctx context.Context, cfg config.SelectionConfig, logger zerolog.Logger) selection.Loader {
	fileLoader := selection.NewFileLoader(cfg.Dir, logger)
	if !cfg.S3Enabled {
		logger.Info().Msg("using local file system for selection files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := selection.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}
	return selection.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Prefix, true, logger)
}
