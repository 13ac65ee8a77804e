// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/models"
)

func TestSubscriptions(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.register("alice")
	carol, carolToken := s.register("carol")
	bob, bobToken := s.register("bob")
	tag := s.mustTag("dinner")
	rice := s.mustIngredient("rice", "g")
	line := RecipeIngredientRequest{ID: rice.ID, Amount: 100}
	for _, name := range []string{"First", "Second", "Third"} {
		s.createRecipe(aliceToken, name, []int64{tag.ID}, line)
	}
	s.createRecipe(carolToken, "Carol's", []int64{tag.ID}, line)

	subscribe := func(id int64) string { return fmt.Sprintf("/api/users/%d/subscribe/", id) }

	rec := s.do(http.MethodPost, subscribe(alice.ID)+"?recipes_limit=2", bobToken, nil)
	expectStatus(t, rec, http.StatusCreated)
	var sub models.Subscription
	decodeData(t, rec, &sub)
	if sub.ID != alice.ID || !sub.IsSubscribed {
		t.Errorf("subscription = %+v", sub)
	}
	if sub.RecipesCount != 3 || len(sub.Recipes) != 2 || sub.Recipes[0].Name != "Third" {
		t.Errorf("recipes_count = %d, recipes = %+v", sub.RecipesCount, sub.Recipes)
	}

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode string
		status   int
	}{
		{"duplicate", http.MethodPost, subscribe(alice.ID), ErrCodeBadRequest, http.StatusBadRequest},
		{"self", http.MethodPost, subscribe(bob.ID), ErrCodeBadRequest, http.StatusBadRequest},
		{"unknown author", http.MethodPost, subscribe(9999), ErrCodeNotFound, http.StatusNotFound},
		{"unsubscribe not followed", http.MethodDelete, subscribe(carol.ID), ErrCodeBadRequest, http.StatusBadRequest},
		{"unsubscribe unknown", http.MethodDelete, subscribe(9999), ErrCodeNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrorCode(t, s.do(tt.method, tt.path, bobToken, nil), tt.status, tt.wantCode)
		})
	}

	expectStatus(t, s.do(http.MethodPost, subscribe(carol.ID), bobToken, nil), http.StatusCreated)

	rec = s.do(http.MethodGet, "/api/users/subscriptions/?recipes_limit=1", bobToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var subs []models.Subscription
	env := decodeData(t, rec, &subs)
	if len(subs) != 2 || env.Meta.Pagination == nil || env.Meta.Pagination.Total != 2 {
		t.Fatalf("subscriptions = %+v, pagination = %+v", subs, env.Meta.Pagination)
	}
	for _, got := range subs {
		if len(got.Recipes) != 1 {
			t.Errorf("%s: %d recipes, want 1 with recipes_limit=1", got.Username, len(got.Recipes))
		}
	}
	if subs[0].ID != carol.ID {
		t.Errorf("first subscription = %s, want most recent (carol)", subs[0].Username)
	}

	expectStatus(t, s.do(http.MethodDelete, subscribe(alice.ID), bobToken, nil), http.StatusNoContent)
	expectErrorCode(t, s.do(http.MethodDelete, subscribe(alice.ID), bobToken, nil), http.StatusBadRequest, ErrCodeBadRequest)

	rec = s.do(http.MethodGet, "/api/users/subscriptions/", bobToken, nil)
	expectStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &subs)
	if len(subs) != 1 || subs[0].ID != carol.ID || subs[0].RecipesCount != 1 {
		t.Errorf("after unsubscribe = %+v", subs)
	}

	expectErrorCode(t, s.do(http.MethodGet, "/api/users/subscriptions/", "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)
	for _, want := range []events.Type{events.SubscriptionCreated, events.SubscriptionDeleted} {
		if !s.events.has(want) {
			t.Errorf("activities = %v, missing %s", s.events.types(), want)
		}
	}
}
