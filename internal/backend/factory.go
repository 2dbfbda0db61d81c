package backend

import (
	"context"
	"fmt"

	applog "bizledger/internal/log"
	"bizledger/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case FileBackend:
		return f.createFileBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	kv, err := storage.NewSQLiteKV(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		applog.FieldBackend, config.Type.String(),
		"db_path", config.SQLiteDBPath)

	return &BackendResult{KV: kv, Cleanup: kv.Close}, nil
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (*BackendResult, error) {
	kv, err := storage.NewFileKV(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized file backend",
		applog.FieldBackend, config.Type.String(),
		"data_directory", kv.Dir())

	return &BackendResult{KV: kv, Cleanup: kv.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	kv := storage.NewMemory()

	f.logger.InfoContext(ctx, "Initialized memory backend; changes will not survive a restart",
		applog.FieldBackend, MemoryBackend.String())

	return &BackendResult{KV: kv, Cleanup: kv.Close}, nil
}
