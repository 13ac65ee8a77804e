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

// Relation tables keyed by (user_id, recipe_id).
const (
	TableFavorites    = "favorites"
	TableShoppingCart = "shopping_cart"
)

// AddFavorite marks a recipe as a favorite of userID.
func (db *DB) AddFavorite(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error) {
	return db.addRecipeRelation(ctx, TableFavorites, userID, recipeID)
}

// RemoveFavorite removes a favorite mark.
func (db *DB) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return db.removeRecipeRelation(ctx, TableFavorites, userID, recipeID)
}

// AddToCart puts a recipe into userID's shopping cart.
func (db *DB) AddToCart(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error) {
	return db.addRecipeRelation(ctx, TableShoppingCart, userID, recipeID)
}

// RemoveFromCart takes a recipe out of userID's shopping cart.
func (db *DB) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return db.removeRecipeRelation(ctx, TableShoppingCart, userID, recipeID)
}

// addRecipeRelation inserts (userID, recipeID) into table. It returns
// ErrNotFound for an unknown recipe and ErrAlreadyExists when the pair is
// already present.
func (db *DB) addRecipeRelation(ctx context.Context, table string, userID, recipeID int64) (_ *models.RecipeShort, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", table, start, err) }(time.Now())

	var short models.RecipeShort
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id, name, image, cooking_time FROM recipes WHERE id = ?`, recipeID).
			Scan(&short.ID, &short.Name, &short.Image, &short.CookingTime)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var present bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE user_id = ? AND recipe_id = ?)`,
			userID, recipeID,
		).Scan(&present); err != nil {
			return err
		}
		if present {
			return ErrAlreadyExists
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO `+table+` (user_id, recipe_id, created_at) VALUES (?, ?, ?)`,
			userID, recipeID, time.Now().UTC())
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
		if isUniqueConstraintError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to add to %s: %w", table, err)
	}
	return &short, nil
}

// removeRecipeRelation deletes (userID, recipeID) from table. It returns
// ErrNotFound for an unknown recipe and ErrNotPresent when the pair was
// never added.
func (db *DB) removeRecipeRelation(ctx context.Context, table string, userID, recipeID int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("DELETE", table, start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM recipes WHERE id = ?)`, recipeID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotPresent
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotPresent) {
			return err
		}
		return fmt.Errorf("failed to remove from %s: %w", table, err)
	}
	return nil
}
