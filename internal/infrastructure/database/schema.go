package database

import (
	"context"
	"fmt"
	"log"
)

// Schema bootstrap. Runs on startup so a fresh database is usable without
// a separate migration step; every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS carousels (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		slides JSONB NOT NULL DEFAULT '[]',
		settings JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT carousels_slug_key UNIQUE (slug)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_carousels_created_at ON carousels (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS site_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}

	log.Println("[DATABASE] Schema verified")
	return nil
}
