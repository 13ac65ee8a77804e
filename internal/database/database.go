// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package database is the Foodgram relational store, backed by DuckDB through
// database/sql.
//
// Files:
//   - database.go: connection lifecycle
//   - database_schema.go, migrations.go: tables, sequences, indexes, versioned migrations
//   - users.go, catalog.go, recipes.go: entity CRUD
//   - relations.go, subscriptions.go: favorites, shopping cart and follows
//   - shopping_cart.go: cart snapshot read by the shopping list aggregator
//   - seed.go: idempotent catalog seeding and admin bootstrap
//
// Referential integrity between tables is maintained by the store's
// transactional writes rather than FOREIGN KEY clauses: deleting a recipe
// removes its favorites, cart entries, tag links and ingredient lines in the
// same transaction.
//
// Every exported method takes a context. When the caller's context has no
// deadline a 30 second timeout is applied.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/logging"
)

const (
	memoryPath       = ":memory:"
	defaultMaxMemory = "512MB"
	lifecycleTimeout = 30 * time.Second
)

// DB is the Foodgram store.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database at cfg.Path (":memory:" for an ephemeral store) and
// brings the schema up to date.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if err := ensureParentDir(cfg.Path); err != nil {
		return nil, err
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	conn, err := sql.Open("duckdb", dsn(cfg.Path, threads, cfg.MaxMemory))
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", cfg.Path, err)
	}
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{conn: conn, cfg: cfg}
	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", threads).Msg("Database ready")
	return db, nil
}

// dsn builds the DuckDB connection string. Extension auto-loading is off so
// the server never downloads code at runtime.
func dsn(path string, threads int, maxMemory string) string {
	if maxMemory == "" {
		maxMemory = defaultMaxMemory
	}
	q := url.Values{}
	q.Set("access_mode", "read_write")
	q.Set("threads", strconv.Itoa(threads))
	q.Set("max_memory", maxMemory)
	q.Set("autoinstall_known_extensions", "false")
	q.Set("autoload_known_extensions", "false")
	return path + "?" + q.Encode()
}

func ensureParentDir(path string) error {
	if path == memoryPath {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}

func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	if err := db.runVersionedMigrations(); err != nil {
		return err
	}
	db.checkpointQuietly("schema initialization")
	return nil
}

func (db *DB) checkpointQuietly(reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Str("after", reason).Msg("Database checkpoint failed")
	}
}

// Conn exposes the pool for tests and diagnostics.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close checkpoints and closes the pool. Calling it twice is harmless.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	db.checkpointQuietly("close")
	return db.conn.Close()
}

var errNoConnection = errors.New("database connection is nil")

// Ping backs the readiness check.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return errNoConnection
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}
