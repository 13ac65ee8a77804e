// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/foodgram/internal/logging"
)

// migration is a schema change applied once, after the base schema.
type migration struct {
	version int
	name    string
	stmt    string
}

// migrations is append-only and ordered by version. Shipped entries are
// never edited.
var migrations = []migration{
	{1, "recipes_pub_date_index", `CREATE INDEX IF NOT EXISTS idx_recipes_pub_date ON recipes(pub_date)`},
	{2, "ingredients_name_index", `CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(name)`},
}

// runVersionedMigrations applies the migrations newer than the recorded
// schema version, each in its own transaction together with its
// schema_migrations row.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	current, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		applied++
	}
	if applied > 0 {
		logging.Info().Int("count", applied).Int("version", migrations[len(migrations)-1].version).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration v%d: begin: %w", m.version, err)
	}
	if _, err := tx.ExecContext(ctx, m.stmt); err != nil {
		_ = tx.Rollback() //nolint:errcheck // the exec error is returned
		return fmt.Errorf("migration v%d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		m.version, m.name, time.Now().UTC()); err != nil {
		_ = tx.Rollback() //nolint:errcheck // the insert error is returned
		return fmt.Errorf("migration v%d: record: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration v%d: commit: %w", m.version, err)
	}
	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration version, or
// 0 on a fresh database.
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	if err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
