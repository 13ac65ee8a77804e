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
	"strings"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// recipeSelect binds the viewer id twice, for is_favorited and is_in_shopping_cart.
const recipeSelect = `SELECT r.id, r.author_id, r.name, r.image, r.text, r.cooking_time, r.pub_date,
	EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = ?) AS is_favorited,
	EXISTS (SELECT 1 FROM shopping_cart c WHERE c.recipe_id = r.id AND c.user_id = ?) AS is_in_shopping_cart
	FROM recipes r`

// recipeWhere builds the filter clause shared by the count and page queries.
func recipeWhere(f *models.RecipeFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.AuthorID > 0 {
		conds = append(conds, "r.author_id = ?")
		args = append(args, f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		conds = append(conds, `r.id IN (SELECT rt.recipe_id FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN (`+placeholders(len(f.TagSlugs))+`))`)
		args = append(args, stringArgs(f.TagSlugs)...)
	}
	if f.FavoritedBy > 0 {
		conds = append(conds, "r.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)")
		args = append(args, f.FavoritedBy)
	}
	if f.InCartOf > 0 {
		conds = append(conds, "r.id IN (SELECT recipe_id FROM shopping_cart WHERE user_id = ?)")
		args = append(args, f.InCartOf)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListRecipes returns one page of recipes matching the filter, newest first,
// and the total number of matches.
func (db *DB) ListRecipes(ctx context.Context, f *models.RecipeFilter) (_ []models.Recipe, _ int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "recipes", start, err) }(time.Now())

	where, whereArgs := recipeWhere(f)

	var total int64
	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes r`+where, whereArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	args := append([]interface{}{f.ViewerID, f.ViewerID}, whereArgs...)
	args = append(args, f.Limit, f.Offset)
	recipes, err := db.loadRecipes(ctx, db.conn, recipeSelect+where+` ORDER BY r.pub_date DESC, r.id DESC LIMIT ? OFFSET ?`, args, f.ViewerID)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// GetRecipe returns a fully hydrated recipe as seen by viewerID.
func (db *DB) GetRecipe(ctx context.Context, id, viewerID int64) (_ *models.Recipe, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "recipes", start, err) }(time.Now())

	recipes, err := db.loadRecipes(ctx, db.conn, recipeSelect+` WHERE r.id = ?`, []interface{}{viewerID, viewerID, id}, viewerID)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNotFound
	}
	return &recipes[0], nil
}

// RecipeAuthorID returns the author of a recipe.
func (db *DB) RecipeAuthorID(ctx context.Context, id int64) (_ int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "recipes", start, err) }(time.Now())

	var authorID int64
	err = db.conn.QueryRowContext(ctx, `SELECT author_id FROM recipes WHERE id = ?`, id).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get recipe author: %w", err)
	}
	return authorID, nil
}

// loadRecipes runs a recipeSelect query and attaches authors, tags and
// ingredient lines with one query each.
func (db *DB) loadRecipes(ctx context.Context, q queryer, query string, args []interface{}, viewerID int64) ([]models.Recipe, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	recipes := []models.Recipe{}
	authorIDs := []int64{}
	seenAuthor := map[int64]struct{}{}
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(&r.ID, &r.Author.ID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.PubDate,
			&r.IsFavorited, &r.IsInShoppingCart); err != nil {
			closeQuietly(rows)
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		r.Tags = []models.Tag{}
		r.Ingredients = []models.RecipeIngredient{}
		recipes = append(recipes, r)
		if _, ok := seenAuthor[r.Author.ID]; !ok {
			seenAuthor[r.Author.ID] = struct{}{}
			authorIDs = append(authorIDs, r.Author.ID)
		}
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	closeQuietly(rows)

	if len(recipes) == 0 {
		return recipes, nil
	}

	index := make(map[int64]int, len(recipes))
	ids := make([]int64, len(recipes))
	for i := range recipes {
		index[recipes[i].ID] = i
		ids[i] = recipes[i].ID
	}

	authors, err := loadUsers(ctx, q, authorIDs, viewerID)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if a, ok := authors[recipes[i].Author.ID]; ok {
			recipes[i].Author = a
		}
	}

	if err := loadRecipeTags(ctx, q, ids, func(recipeID int64, t models.Tag) {
		r := &recipes[index[recipeID]]
		r.Tags = append(r.Tags, t)
	}); err != nil {
		return nil, err
	}

	if err := loadRecipeIngredients(ctx, q, ids, func(recipeID int64, ri models.RecipeIngredient) {
		r := &recipes[index[recipeID]]
		r.Ingredients = append(r.Ingredients, ri)
	}); err != nil {
		return nil, err
	}

	return recipes, nil
}

func loadUsers(ctx context.Context, q queryer, ids []int64, viewerID int64) (map[int64]models.User, error) {
	args := append([]interface{}{viewerID}, int64Args(ids)...)
	rows, err := q.QueryContext(ctx, userSelect+` WHERE u.id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	defer closeQuietly(rows)

	users := make(map[int64]models.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		users[u.ID] = *u
	}
	return users, rows.Err()
}

func loadRecipeTags(ctx context.Context, q queryer, recipeIDs []int64, add func(int64, models.Tag)) error {
	rows, err := q.QueryContext(ctx,
		`SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
		 WHERE rt.recipe_id IN (`+placeholders(len(recipeIDs))+`)
		 ORDER BY t.name, t.id`, int64Args(recipeIDs)...)
	if err != nil {
		return fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var recipeID int64
		var t models.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		add(recipeID, t)
	}
	return rows.Err()
}

func loadRecipeIngredients(ctx context.Context, q queryer, recipeIDs []int64, add func(int64, models.RecipeIngredient)) error {
	rows, err := q.QueryContext(ctx,
		`SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		 FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id IN (`+placeholders(len(recipeIDs))+`)
		 ORDER BY ri.id`, int64Args(recipeIDs)...)
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var recipeID int64
		var ri models.RecipeIngredient
		if err := rows.Scan(&recipeID, &ri.ID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		add(recipeID, ri)
	}
	return rows.Err()
}

// CreateRecipe stores a recipe with its tag links and ingredient lines in one
// transaction and returns it as seen by its author. Unknown or repeated tag
// and ingredient ids yield a *ReferenceError.
func (db *DB) CreateRecipe(ctx context.Context, authorID int64, in *models.RecipeInput) (_ *models.Recipe, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "recipes", start, err) }(time.Now())

	var id int64
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkRecipeReferences(ctx, tx, in); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO recipes (author_id, name, image, text, cooking_time, pub_date)
			 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			authorID, in.Name, in.Image, in.Text, in.CookingTime, time.Now().UTC(),
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		return insertRecipeLinks(ctx, tx, id, in)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidReference) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return db.GetRecipe(ctx, id, authorID)
}

// UpdateRecipe replaces a recipe's fields, tags and ingredient lines. An
// empty Image keeps the stored one.
func (db *DB) UpdateRecipe(ctx context.Context, id, viewerID int64, in *models.RecipeInput) (_ *models.Recipe, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("UPDATE", "recipes", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM recipes WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		if err := checkRecipeReferences(ctx, tx, in); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE recipes SET name = ?, text = ?, cooking_time = ?,
				image = CASE WHEN ? = '' THEN image ELSE ? END
			 WHERE id = ?`,
			in.Name, in.Text, in.CookingTime, in.Image, in.Image, id,
		); err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear recipe tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		return insertRecipeLinks(ctx, tx, id, in)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidReference) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update recipe %d: %w", id, err)
	}

	return db.GetRecipe(ctx, id, viewerID)
}

// DeleteRecipe removes a recipe together with its links, favorites and cart
// entries. It returns the stored image path so the caller can drop the file.
func (db *DB) DeleteRecipe(ctx context.Context, id int64) (_ string, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("DELETE", "recipes", start, err) }(time.Now())

	var image string
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT image FROM recipes WHERE id = ?`, id).Scan(&image)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		for _, table := range []string{"favorites", "shopping_cart", "recipe_tags", "recipe_ingredients"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE recipe_id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to delete recipe %d: %w", id, err)
	}
	return image, nil
}

func checkRecipeReferences(ctx context.Context, tx *sql.Tx, in *models.RecipeInput) error {
	if dup := duplicates(in.TagIDs); len(dup) > 0 {
		return &ReferenceError{Kind: "tag", IDs: dup}
	}
	ingredientIDs := make([]int64, len(in.Ingredients))
	for i, ia := range in.Ingredients {
		ingredientIDs[i] = ia.IngredientID
	}
	if dup := duplicates(ingredientIDs); len(dup) > 0 {
		return &ReferenceError{Kind: "ingredient", IDs: dup}
	}

	missing, err := missingIDs(ctx, tx, "tags", in.TagIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &ReferenceError{Kind: "tag", IDs: missing}
	}
	missing, err = missingIDs(ctx, tx, "ingredients", ingredientIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &ReferenceError{Kind: "ingredient", IDs: missing}
	}
	return nil
}

func insertRecipeLinks(ctx context.Context, tx *sql.Tx, recipeID int64, in *models.RecipeInput) error {
	if len(in.TagIDs) > 0 {
		values := strings.TrimSuffix(strings.Repeat("(?, ?), ", len(in.TagIDs)), ", ")
		args := make([]interface{}, 0, 2*len(in.TagIDs))
		for _, tagID := range in.TagIDs {
			args = append(args, recipeID, tagID)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO recipe_tags (recipe_id, tag_id) VALUES `+values, args...); err != nil {
			return fmt.Errorf("failed to insert recipe tags: %w", err)
		}
	}

	if len(in.Ingredients) > 0 {
		values := strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", len(in.Ingredients)), ", ")
		args := make([]interface{}, 0, 3*len(in.Ingredients))
		for _, ia := range in.Ingredients {
			args = append(args, recipeID, ia.IngredientID, ia.Amount)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES `+values, args...); err != nil {
			return fmt.Errorf("failed to insert recipe ingredients: %w", err)
		}
	}
	return nil
}

func duplicates(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	var dup []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			dup = append(dup, id)
			continue
		}
		seen[id] = struct{}{}
	}
	return dup
}
