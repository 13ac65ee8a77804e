// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"testing"

	"github.com/tomtom215/foodgram/internal/models"
)

func TestCartLines(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := mustCreateUser(t, db, "chef")
	buyer := mustCreateUser(t, db, "buyer")
	other := mustCreateUser(t, db, "other")
	tag := mustCreateTag(t, db, "baking")
	flour := mustCreateIngredient(t, db, "flour", "g")
	sugar := mustCreateIngredient(t, db, "sugar", "g")

	a := mustCreateRecipe(t, db, author, tag, "bread", models.IngredientAmount{IngredientID: flour.ID, Amount: 200})
	b := mustCreateRecipe(t, db, author, tag, "cake",
		models.IngredientAmount{IngredientID: flour.ID, Amount: 100},
		models.IngredientAmount{IngredientID: sugar.ID, Amount: 50},
	)

	lines, err := db.CartLines(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("CartLines(empty) error = %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Errorf("empty cart = %v, want empty non-nil slice", lines)
	}

	for _, r := range []*models.Recipe{a, b} {
		if _, err := db.AddToCart(ctx, buyer.ID, r.ID); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.AddToCart(ctx, other.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	lines, err = db.CartLines(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("CartLines() error = %v", err)
	}
	want := []models.CartLine{
		{RecipeID: a.ID, Name: "flour", Unit: "g", Amount: 200},
		{RecipeID: b.ID, Name: "flour", Unit: "g", Amount: 100},
		{RecipeID: b.ID, Name: "sugar", Unit: "g", Amount: 50},
	}
	if len(lines) != len(want) {
		t.Fatalf("CartLines() = %+v, want %+v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}

	if err := db.RemoveFromCart(ctx, buyer.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := db.RemoveFromCart(ctx, buyer.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	lines, err = db.CartLines(ctx, buyer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Errorf("cart lines after emptying = %+v", lines)
	}
}
