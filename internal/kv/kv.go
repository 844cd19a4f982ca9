// Package kv provides the key/value persistence backends for the task list.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"taskpad/internal/config"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a whole-value key/value store.
// There are no transactions and no partial updates.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the backend.
	Close() error
}

// Driver names accepted in settings.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open creates the backend selected by cfg.Settings.Storage.
// Relative file and sqlite paths are resolved against the config directory.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	st := cfg.Settings.Storage
	path := st.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Dir, path)
	}

	logger.Debug("opening storage", "driver", st.Driver, "path", path)

	switch st.Driver {
	case "", DriverFile:
		if path == "" {
			path = filepath.Join(cfg.Dir, config.DefaultDataFile)
		}
		return NewFile(path, logger), nil
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		if path == "" {
			path = filepath.Join(cfg.Dir, config.DefaultSQLiteFile)
		}
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		return OpenSQL(ctx, DialectSQLite, path)
	case DriverPostgres:
		if st.DSN == "" {
			return nil, fmt.Errorf("storage.dsn required for driver %s", st.Driver)
		}
		return OpenSQL(ctx, DialectPostgres, st.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", st.Driver)
	}
}
