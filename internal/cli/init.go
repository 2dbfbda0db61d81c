// Package cli provides common CLI initialization utilities and styled
// terminal output for the bizledger commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bizledger/internal/backend"
	"bizledger/internal/config"
	"bizledger/internal/finance"
	applog "bizledger/internal/log"
	"bizledger/internal/tasks"
)

// SetupLogger builds the application logger from LOG_LEVEL and LOG_FORMAT.
func SetupLogger(cfg *config.Config) (*applog.Logger, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logCfg := applog.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.LogFormat
	return applog.New(logCfg), nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Stores bundles both stores opened over one backend.
type Stores struct {
	Finance *finance.Store
	Tasks   *tasks.Store
	Backend *backend.BackendResult
}

// Close releases the backend.
func (s *Stores) Close() error {
	if s.Backend == nil || s.Backend.Cleanup == nil {
		return nil
	}
	return s.Backend.Cleanup()
}

// OpenStores opens the configured backend and loads both stores from it.
// Fresh stores are seeded with sample data when LEDGER_SEED_SAMPLE is set.
func OpenStores(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*Stores, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", bcfg.Type, err)
	}

	financeOpts := finance.Options{Logger: logger}
	taskOpts := tasks.Options{Logger: logger}
	if cfg.SeedSample {
		financeOpts.Seed = finance.SampleSnapshot
		taskOpts.Seed = tasks.SampleTasks
	}

	fin, err := finance.Open(res.KV, financeOpts)
	if err != nil {
		_ = res.Cleanup()
		return nil, err
	}
	tsk, err := tasks.Open(res.KV, taskOpts)
	if err != nil {
		_ = res.Cleanup()
		return nil, err
	}

	logger.Debug("Stores opened",
		applog.FieldBackend, string(bcfg.Type),
		"finance_revision", fin.Revision(),
		"task_revision", tsk.Revision(),
	)
	return &Stores{Finance: fin, Tasks: tsk, Backend: res}, nil
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals or when parent
// is done, and a channel that signals when cleanup is complete.
func GracefulShutdown(parent context.Context, logger *applog.Logger, timeout time.Duration, cleanup func(context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
		}
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup finished.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
