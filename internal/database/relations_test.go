// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/foodgram/internal/models"
)

func TestRecipeRelations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := mustCreateUser(t, db, "chef")
	user := mustCreateUser(t, db, "eater")
	tag := mustCreateTag(t, db, "lunch")
	salt := mustCreateIngredient(t, db, "salt", "g")
	r := mustCreateRecipe(t, db, author, tag, "soup", models.IngredientAmount{IngredientID: salt.ID, Amount: 1})

	relations := []struct {
		name   string
		add    func(context.Context, int64, int64) (*models.RecipeShort, error)
		remove func(context.Context, int64, int64) error
	}{
		{"favorites", db.AddFavorite, db.RemoveFavorite},
		{"shopping cart", db.AddToCart, db.RemoveFromCart},
	}

	for _, rel := range relations {
		t.Run(rel.name, func(t *testing.T) {
			short, err := rel.add(ctx, user.ID, r.ID)
			if err != nil {
				t.Fatalf("add error = %v", err)
			}
			if *short != r.Short() {
				t.Errorf("add returned %+v, want %+v", short, r.Short())
			}

			if _, err := rel.add(ctx, user.ID, r.ID); !errors.Is(err, ErrAlreadyExists) {
				t.Errorf("second add error = %v, want ErrAlreadyExists", err)
			}
			if _, err := rel.add(ctx, user.ID, 9999); !errors.Is(err, ErrNotFound) {
				t.Errorf("add unknown recipe error = %v, want ErrNotFound", err)
			}

			if err := rel.remove(ctx, user.ID, r.ID); err != nil {
				t.Fatalf("remove error = %v", err)
			}
			if err := rel.remove(ctx, user.ID, r.ID); !errors.Is(err, ErrNotPresent) {
				t.Errorf("second remove error = %v, want ErrNotPresent", err)
			}
			if err := rel.remove(ctx, user.ID, 9999); !errors.Is(err, ErrNotFound) {
				t.Errorf("remove unknown recipe error = %v, want ErrNotFound", err)
			}
		})
	}
}
