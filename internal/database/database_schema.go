// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
database_schema.go - Database Schema Management

Tables:
  - users: accounts (email and username unique)
  - tags, ingredients: catalog; ingredients unique per (name, measurement_unit)
  - recipes: one row per recipe, image stored as a media-relative path
  - recipe_tags, recipe_ingredients: recipe links, replaced wholesale on update
  - favorites, shopping_cart: (user, recipe), unique per user
  - subscriptions: (user, author), unique per pair

IDs come from per-table sequences. Link tables carry no UNIQUE constraint:
recipe updates delete and re-insert their links inside one transaction, and
uniqueness of the submitted ids is checked by request validation.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS tags_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS ingredients_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS recipes_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS recipe_ingredients_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		email VARCHAR(254) NOT NULL UNIQUE,
		username VARCHAR(150) NOT NULL UNIQUE,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		password_hash VARCHAR NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id BIGINT PRIMARY KEY DEFAULT nextval('tags_id_seq'),
		name VARCHAR(200) NOT NULL UNIQUE,
		color VARCHAR(7) NOT NULL DEFAULT '#FF0000',
		slug VARCHAR(200) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS ingredients (
		id BIGINT PRIMARY KEY DEFAULT nextval('ingredients_id_seq'),
		name VARCHAR(200) NOT NULL,
		measurement_unit VARCHAR(200) NOT NULL,
		UNIQUE (name, measurement_unit)
	)`,

	`CREATE TABLE IF NOT EXISTS recipes (
		id BIGINT PRIMARY KEY DEFAULT nextval('recipes_id_seq'),
		author_id BIGINT NOT NULL,
		name VARCHAR(200) NOT NULL,
		image VARCHAR NOT NULL,
		text VARCHAR NOT NULL,
		cooking_time INTEGER NOT NULL CHECK (cooking_time BETWEEN 1 AND 32000),
		pub_date TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_tags (
		recipe_id BIGINT NOT NULL,
		tag_id BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		id BIGINT PRIMARY KEY DEFAULT nextval('recipe_ingredients_id_seq'),
		recipe_id BIGINT NOT NULL,
		ingredient_id BIGINT NOT NULL,
		amount INTEGER NOT NULL CHECK (amount BETWEEN 1 AND 32000)
	)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		user_id BIGINT NOT NULL,
		recipe_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, recipe_id)
	)`,

	`CREATE TABLE IF NOT EXISTS shopping_cart (
		user_id BIGINT NOT NULL,
		recipe_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, recipe_id)
	)`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		user_id BIGINT NOT NULL,
		author_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, author_id),
		CHECK (user_id <> author_id)
	)`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_tags_recipe ON recipe_tags(recipe_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_author ON subscriptions(author_id)`,
}

// createTables creates sequences, tables and indexes.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
