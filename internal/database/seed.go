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
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
)

// ReadIngredientsFile parses a JSON array of {name, measurement_unit}.
func ReadIngredientsFile(path string) ([]models.Ingredient, error) {
	var items []models.Ingredient
	if err := readJSONFile(path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadTagsFile parses a JSON array of {name, color, slug}.
func ReadTagsFile(path string) ([]models.Tag, error) {
	var items []models.Tag
	if err := readJSONFile(path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// SeedIngredients inserts the given ingredients, skipping pairs that already
// exist, and returns how many rows were added.
func (db *DB) SeedIngredients(ctx context.Context, items []models.Ingredient) (_ int, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "ingredients", start, err) }(time.Now())

	added := 0
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		added = 0
		for _, in := range items {
			if in.Name == "" || in.MeasurementUnit == "" {
				continue
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				in.Name, in.MeasurementUnit)
			if err != nil {
				return fmt.Errorf("failed to seed ingredient %q: %w", in.Name, err)
			}
			n, _ := res.RowsAffected()
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// SeedTags inserts the given tags, skipping names or slugs already taken,
// and returns how many rows were added.
func (db *DB) SeedTags(ctx context.Context, items []models.Tag) (_ int, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "tags", start, err) }(time.Now())

	added := 0
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		added = 0
		for _, t := range items {
			if t.Name == "" || t.Slug == "" {
				continue
			}
			color := t.Color
			if color == "" {
				color = models.DefaultTagColor
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO tags (name, color, slug) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
				t.Name, color, t.Slug)
			if err != nil {
				return fmt.Errorf("failed to seed tag %q: %w", t.Slug, err)
			}
			n, _ := res.RowsAffected()
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// SeedCatalog loads the configured ingredient and tag files. Empty paths
// are skipped.
func (db *DB) SeedCatalog(ctx context.Context, ingredientsFile, tagsFile string) error {
	if ingredientsFile != "" {
		items, err := ReadIngredientsFile(ingredientsFile)
		if err != nil {
			return err
		}
		n, err := db.SeedIngredients(ctx, items)
		if err != nil {
			return err
		}
		logging.Info().Str("file", ingredientsFile).Int("added", n).Int("total", len(items)).Msg("Seeded ingredients")
	}

	if tagsFile != "" {
		items, err := ReadTagsFile(tagsFile)
		if err != nil {
			return err
		}
		n, err := db.SeedTags(ctx, items)
		if err != nil {
			return err
		}
		logging.Info().Str("file", tagsFile).Int("added", n).Int("total", len(items)).Msg("Seeded tags")
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account unless its e-mail is
// already registered. It reports whether an account was created.
func (db *DB) EnsureAdmin(ctx context.Context, in *models.NewUser) (bool, error) {
	if _, err := db.GetUserCredentials(ctx, in.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	admin := *in
	admin.Role = models.RoleAdmin
	if _, err := db.CreateUser(ctx, &admin); err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}
	return true, nil
}
