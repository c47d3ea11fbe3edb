package store

import (
	"context"
	"fmt"

	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/migrations"
)

// Migrate applies pending schema migrations to the connected database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// NewRegistry initialises the ticket registry named by cfg.Registry.Backend.
// For the postgres backend it performs the following steps:
//  1. Opens and pings a connection to the DSN in cfg.DB.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs a registry over the shared handle.
//
// The memory backend needs no external resources and is ready immediately.
// Configuration validation has already rejected unknown backend names, so
// the default branch only guards against callers bypassing the config layer.
func NewRegistry(ctx context.Context, cfg config.Storage, log *logger.Logger) (Registry, error) {
	log.Info().Str("backend", cfg.Registry.Backend).Msg("creating ticket registry...")

	switch cfg.Registry.Backend {
	case config.BackendMemory:
		return NewMemoryRegistry(log), nil

	case config.BackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}

		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return NewPostgresRegistry(db, log), nil

	default:
		return nil, fmt.Errorf("unknown registry backend: %q", cfg.Registry.Backend)
	}
}
