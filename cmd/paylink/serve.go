package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rideandbuy/paylink/internal/config"
	"github.com/rideandbuy/paylink/internal/db"
	"github.com/rideandbuy/paylink/internal/handlers"
	"github.com/rideandbuy/paylink/internal/jobs"
	"github.com/rideandbuy/paylink/internal/provider"
	"github.com/rideandbuy/paylink/internal/repository"
)

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting paylink",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"currency", cfg.App.Currency,
		"duplicate_policy", cfg.App.DuplicatePolicy,
		"idempotency_backend", cfg.Idempotency.Backend,
	)

	if !cfg.Provider.HasProviderCredentials() {
		logger.Warn("provider credentials are not configured; payment link requests will fail")
	}

	idempotencyRepo, closeRepo, err := openIdempotencyRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open idempotency store", "error", err)
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error("failed to close idempotency store", "error", err)
		}
	}()

	store := repository.NewTransactionStore(duplicatePolicy(cfg.App.DuplicatePolicy))
	providerClient := provider.NewClient(cfg.Provider, logger)

	router, err := handlers.NewRouter(cfg, store, providerClient, idempotencyRepo, logger)
	if err != nil {
		logger.Error("failed to build router", "error", err)
		return err
	}

	janitor, err := jobs.NewIdempotencyJanitor(idempotencyRepo, cfg.Idempotency, logger)
	if err != nil {
		logger.Error("failed to schedule idempotency purge", "error", err)
		return err
	}
	janitor.Start()
	defer func() {
		<-janitor.Stop().Done()
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
			return err
		}
	case <-quit:
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func duplicatePolicy(policy string) repository.DuplicatePolicy {
	if policy == config.DuplicatePolicyReject {
		return repository.DuplicateReject
	}
	return repository.DuplicateOverwrite
}

// openIdempotencyRepository opens the configured cache backend and returns a
// function that releases it.
func openIdempotencyRepository(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (repository.IdempotencyRepository, func() error, error) {
	switch cfg.Idempotency.Backend {
	case config.IdempotencyBackendBolt:
		repo, err := repository.NewBoltIdempotencyRepository(cfg.Idempotency.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using bolt idempotency store", "path", cfg.Idempotency.BoltPath)
		return repo, repo.Close, nil

	case config.IdempotencyBackendPostgres:
		database, err := db.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			_ = database.Close() //nolint:errcheck // already failing
			return nil, nil, err
		}
		return repository.NewPostgresIdempotencyRepository(database), database.Close, nil

	case config.IdempotencyBackendMemory:
		return repository.NewMemoryIdempotencyRepository(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown idempotency backend %q", cfg.Idempotency.Backend)
	}
}
