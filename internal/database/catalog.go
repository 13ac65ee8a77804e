// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// ListTags returns every tag ordered by name.
func (db *DB) ListTags(ctx context.Context) (_ []models.Tag, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "tags", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, color, slug FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer closeQuietly(rows)

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetTag returns a single tag.
func (db *DB) GetTag(ctx context.Context, id int64) (_ *models.Tag, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "tags", start, err) }(time.Now())

	var t models.Tag
	err = db.conn.QueryRowContext(ctx, `SELECT id, name, color, slug FROM tags WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag %d: %w", id, err)
	}
	return &t, nil
}

// CreateTag inserts a tag. A taken name or slug yields a *FieldConflictError.
func (db *DB) CreateTag(ctx context.Context, tag *models.Tag) (_ *models.Tag, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "tags", start, err) }(time.Now())

	color := tag.Color
	if color == "" {
		color = models.DefaultTagColor
	}

	var id int64
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var nameTaken, slugTaken bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM tags WHERE name = ?), EXISTS (SELECT 1 FROM tags WHERE slug = ?)`,
			tag.Name, tag.Slug,
		).Scan(&nameTaken, &slugTaken); err != nil {
			return fmt.Errorf("failed to check tag uniqueness: %w", err)
		}
		if nameTaken {
			return &FieldConflictError{Field: "name"}
		}
		if slugTaken {
			return &FieldConflictError{Field: "slug"}
		}
		return tx.QueryRowContext(ctx,
			`INSERT INTO tags (name, color, slug) VALUES (?, ?, ?) RETURNING id`,
			tag.Name, color, tag.Slug,
		).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
		if isUniqueConstraintError(err) {
			return nil, &FieldConflictError{Field: "slug"}
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &models.Tag{ID: id, Name: tag.Name, Color: color, Slug: tag.Slug}, nil
}

// ListIngredients returns ingredients ordered by name. A non-empty prefix
// restricts the result to names starting with it, ignoring case.
func (db *DB) ListIngredients(ctx context.Context, prefix string) (_ []models.Ingredient, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "ingredients", start, err) }(time.Now())

	query := `SELECT id, name, measurement_unit FROM ingredients`
	var args []interface{}
	if prefix != "" {
		query += ` WHERE starts_with(lower(name), lower(?))`
		args = append(args, prefix)
	}
	query += ` ORDER BY name, measurement_unit, id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer closeQuietly(rows)

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var in models.Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, in)
	}
	return ingredients, rows.Err()
}

// GetIngredient returns a single ingredient.
func (db *DB) GetIngredient(ctx context.Context, id int64) (_ *models.Ingredient, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "ingredients", start, err) }(time.Now())

	var in models.Ingredient
	err = db.conn.QueryRowContext(ctx, `SELECT id, name, measurement_unit FROM ingredients WHERE id = ?`, id).
		Scan(&in.ID, &in.Name, &in.MeasurementUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient %d: %w", id, err)
	}
	return &in, nil
}

// CreateIngredient inserts an ingredient. An existing (name, unit) pair
// yields ErrAlreadyExists.
func (db *DB) CreateIngredient(ctx context.Context, in *models.Ingredient) (_ *models.Ingredient, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "ingredients", start, err) }(time.Now())

	var id int64
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?) RETURNING id`,
		in.Name, in.MeasurementUnit,
	).Scan(&id)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &models.Ingredient{ID: id, Name: in.Name, MeasurementUnit: in.MeasurementUnit}, nil
}

// missingIDs returns the ids from want that are absent in table.
func missingIDs(ctx context.Context, q queryer, table string, want []int64) ([]int64, error) {
	if len(want) == 0 {
		return nil, nil
	}
	rows, err := q.QueryContext(ctx,
		`SELECT id FROM `+table+` WHERE id IN (`+placeholders(len(want))+`)`, int64Args(want)...)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s ids: %w", table, err)
	}
	defer closeQuietly(rows)

	found := make(map[int64]struct{}, len(want))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range want {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
