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

func TestSubscribe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := mustCreateUser(t, db, "chef")
	reader := mustCreateUser(t, db, "reader")
	tag := mustCreateTag(t, db, "lunch")
	salt := mustCreateIngredient(t, db, "salt", "g")
	line := models.IngredientAmount{IngredientID: salt.ID, Amount: 1}
	mustCreateRecipe(t, db, author, tag, "one", line)
	mustCreateRecipe(t, db, author, tag, "two", line)
	three := mustCreateRecipe(t, db, author, tag, "three", line)

	sub, err := db.Subscribe(ctx, reader.ID, author.ID, 1)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !sub.IsSubscribed {
		t.Error("IsSubscribed = false after subscribing")
	}
	if sub.RecipesCount != 3 {
		t.Errorf("RecipesCount = %d, want 3", sub.RecipesCount)
	}
	if len(sub.Recipes) != 1 || sub.Recipes[0].ID != three.ID {
		t.Errorf("Recipes = %+v, want only the newest", sub.Recipes)
	}

	tests := []struct {
		name     string
		userID   int64
		authorID int64
		want     error
	}{
		{"duplicate", reader.ID, author.ID, ErrAlreadyExists},
		{"self", reader.ID, reader.ID, ErrSelfSubscription},
		{"unknown author", reader.ID, 9999, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.Subscribe(ctx, tt.userID, tt.authorID, 0); !errors.Is(err, tt.want) {
				t.Errorf("Subscribe() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := mustCreateUser(t, db, "chef")
	reader := mustCreateUser(t, db, "reader")

	if err := db.Unsubscribe(ctx, reader.ID, author.ID); !errors.Is(err, ErrNotPresent) {
		t.Errorf("Unsubscribe(not following) error = %v, want ErrNotPresent", err)
	}
	if _, err := db.Subscribe(ctx, reader.ID, author.ID, 0); err != nil {
		t.Fatal(err)
	}
	if err := db.Unsubscribe(ctx, reader.ID, author.ID); err != nil {
		t.Errorf("Unsubscribe() error = %v", err)
	}
	if err := db.Unsubscribe(ctx, reader.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unsubscribe(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestListSubscriptions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	reader := mustCreateUser(t, db, "reader")
	a := mustCreateUser(t, db, "a")
	b := mustCreateUser(t, db, "b")
	mustCreateUser(t, db, "c")

	for _, author := range []*models.User{a, b} {
		if _, err := db.Subscribe(ctx, reader.ID, author.ID, 0); err != nil {
			t.Fatal(err)
		}
	}

	subs, total, err := db.ListSubscriptions(ctx, reader.ID, 3, 10, 0)
	if err != nil {
		t.Fatalf("ListSubscriptions() error = %v", err)
	}
	if total != 2 || len(subs) != 2 {
		t.Fatalf("got %d subscriptions (total %d), want 2", len(subs), total)
	}
	for _, s := range subs {
		if !s.IsSubscribed {
			t.Errorf("%s: IsSubscribed = false", s.Username)
		}
		if s.Recipes == nil || s.RecipesCount != 0 {
			t.Errorf("%s: recipes = %v, count %d; want empty list", s.Username, s.Recipes, s.RecipesCount)
		}
	}

	empty, total, err := db.ListSubscriptions(ctx, a.ID, 3, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(empty) != 0 {
		t.Errorf("user without subscriptions got %d (total %d)", len(empty), total)
	}
}
