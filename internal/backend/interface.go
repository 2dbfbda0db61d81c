package backend

import (
	"context"

	"bizledger/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the opened key-value store and its cleanup function
type BackendResult struct {
	KV      storage.KV
	Cleanup CleanupFunc
}

// Factory creates storage backends based on configuration
type Factory interface {
	// CreateBackend opens the key-value store described by config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
