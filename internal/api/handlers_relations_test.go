// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/models"
)

func TestFavoriteAndCart(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.register("alice")
	_, bobToken := s.register("bob")
	tag := s.mustTag("dinner")
	rice := s.mustIngredient("rice", "g")
	recipe := s.createRecipe(aliceToken, "Rice", []int64{tag.ID}, RecipeIngredientRequest{ID: rice.ID, Amount: 100})

	for _, rel := range []string{"favorite", "shopping_cart"} {
		t.Run(rel, func(t *testing.T) {
			path := fmt.Sprintf("/api/recipes/%d/%s/", recipe.ID, rel)

			rec := s.do(http.MethodPost, path, bobToken, nil)
			expectStatus(t, rec, http.StatusCreated)
			var short models.RecipeShort
			decodeData(t, rec, &short)
			if short.ID != recipe.ID || short.Name != "Rice" || short.CookingTime != 20 {
				t.Errorf("short = %+v", short)
			}
			if !strings.HasPrefix(short.Image, mediaPrefix) {
				t.Errorf("short image = %q, want absolute media URL", short.Image)
			}
			if strings.Contains(rec.Body.String(), `"tags"`) {
				t.Errorf("short form carries full recipe fields: %s", rec.Body.String())
			}

			expectErrorCode(t, s.do(http.MethodPost, path, bobToken, nil), http.StatusBadRequest, ErrCodeBadRequest)
			expectStatus(t, s.do(http.MethodDelete, path, bobToken, nil), http.StatusNoContent)
			expectErrorCode(t, s.do(http.MethodDelete, path, bobToken, nil), http.StatusBadRequest, ErrCodeBadRequest)

			expectErrorCode(t, s.do(http.MethodPost, fmt.Sprintf("/api/recipes/9999/%s/", rel), bobToken, nil),
				http.StatusNotFound, ErrCodeNotFound)
			expectErrorCode(t, s.do(http.MethodDelete, fmt.Sprintf("/api/recipes/9999/%s/", rel), bobToken, nil),
				http.StatusNotFound, ErrCodeNotFound)
			expectErrorCode(t, s.do(http.MethodPost, path, "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)
		})
	}

	for _, want := range []events.Type{events.FavoriteAdded, events.FavoriteRemoved, events.CartAdded, events.CartRemoved} {
		if !s.events.has(want) {
			t.Errorf("activities = %v, missing %s", s.events.types(), want)
		}
	}
}

func TestDownloadShoppingCart(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.register("alice")
	_, bobToken := s.register("bob")
	tag := s.mustTag("baking")
	flour := s.mustIngredient("flour", "g")
	sugar := s.mustIngredient("sugar", "g")
	eggs := s.mustIngredient("eggs", "pcs")

	bread := s.createRecipe(aliceToken, "Bread", []int64{tag.ID},
		RecipeIngredientRequest{ID: flour.ID, Amount: 200},
	)
	cake := s.createRecipe(aliceToken, "Cake", []int64{tag.ID},
		RecipeIngredientRequest{ID: flour.ID, Amount: 100},
		RecipeIngredientRequest{ID: sugar.ID, Amount: 50},
		RecipeIngredientRequest{ID: eggs.ID, Amount: 3},
	)

	const download = "/api/recipes/download_shopping_cart/"

	// Empty cart downloads as an empty document.
	rec := s.do(http.MethodGet, download+"?format=txt", bobToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.Len() != 0 {
		t.Errorf("empty cart body = %q", rec.Body.String())
	}

	for _, id := range []int64{bread.ID, cake.ID} {
		expectStatus(t, s.do(http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart/", id), bobToken, nil), http.StatusCreated)
	}

	rec = s.do(http.MethodGet, download, bobToken, nil)
	expectStatus(t, rec, http.StatusOK)
	want := "eggs - 3 pcs\nflour - 300 g\nsugar - 50 g"
	if got := rec.Body.String(); got != want {
		t.Errorf("text list = %q, want %q", got, want)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="shopping_list.txt"` {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rec = s.do(http.MethodGet, download+"?format=pdf", bobToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("pdf body starts with %q", rec.Body.Bytes()[:min(8, rec.Body.Len())])
	}

	// Another user's cart is independent.
	rec = s.do(http.MethodGet, download+"?format=txt", aliceToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.Len() != 0 {
		t.Errorf("alice's cart = %q, want empty", rec.Body.String())
	}

	rec = s.do(http.MethodGet, download+"?format=docx", bobToken, nil)
	expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeValidationFailed)
	details, _ := decodeEnvelope(t, rec).Error.Details.(map[string]interface{})
	if _, ok := details["format"]; !ok {
		t.Errorf("details = %v, want a format entry", details)
	}
	expectErrorCode(t, s.do(http.MethodGet, download, "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)
}
