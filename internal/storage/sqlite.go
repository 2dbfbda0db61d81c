package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	applog "bizledger/internal/log"
)

// SQLiteKV stores snapshots in the kv table of a SQLite database.
type SQLiteKV struct {
	db     *sql.DB
	logger *applog.Logger
}

// NewSQLiteKV opens dbPath and applies pending migrations. A nil logger
// discards output.
func NewSQLiteKV(dbPath string, logger *applog.Logger) (*SQLiteKV, error) {
	if logger == nil {
		logger = applog.Discard()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteKV{db: db, logger: logger.WithComponent(applog.ComponentStorage)}, nil
}

func (r *SQLiteKV) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteKV) Set(key string, value []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	r.logger.Debug("Snapshot saved to SQLite", "key", key, "bytes", len(value))
	return nil
}

func (r *SQLiteKV) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
