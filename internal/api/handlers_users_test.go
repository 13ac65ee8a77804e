// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/models"
)

func TestCreateUser(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/users/", "", UserCreateRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  testPassword,
	})
	expectStatus(t, rec, http.StatusCreated)
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaks password fields: %s", rec.Body.String())
	}

	var user models.User
	env := decodeData(t, rec, &user)
	if !env.Success || env.Meta == nil || env.Meta.RequestID == "" {
		t.Errorf("envelope = %+v, want success with request id", env)
	}
	if user.ID == 0 || user.Username != "alice" || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
	if !s.events.has(events.UserRegistered) {
		t.Errorf("activities = %v, want %s", s.events.types(), events.UserRegistered)
	}
}

func TestCreateUser_Rejects(t *testing.T) {
	s := newTestServer(t)
	s.register("taken")

	valid := func(mod func(*UserCreateRequest)) UserCreateRequest {
		req := UserCreateRequest{
			Email:     "new@example.com",
			Username:  "newcomer",
			FirstName: "New",
			LastName:  "Comer",
			Password:  testPassword,
		}
		mod(&req)
		return req
	}

	tests := []struct {
		name      string
		req       UserCreateRequest
		wantField string
	}{
		{"duplicate email", valid(func(r *UserCreateRequest) { r.Email = "taken@example.com" }), "email"},
		{"duplicate username", valid(func(r *UserCreateRequest) { r.Username = "taken" }), "username"},
		{"reserved username", valid(func(r *UserCreateRequest) { r.Username = "me" }), "username"},
		{"bad username", valid(func(r *UserCreateRequest) { r.Username = "no spaces" }), "username"},
		{"bad email", valid(func(r *UserCreateRequest) { r.Email = "not-an-email" }), "email"},
		{"missing last name", valid(func(r *UserCreateRequest) { r.LastName = "" }), "last_name"},
		{"numeric password", valid(func(r *UserCreateRequest) { r.Password = "1234509876" }), "password"},
		{"password like username", valid(func(r *UserCreateRequest) { r.Password = "newcomer-2024" }), "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/users/", "", tt.req)
			expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeValidationFailed)

			env := decodeEnvelope(t, rec)
			details, ok := env.Error.Details.(map[string]interface{})
			if !ok {
				t.Fatalf("details = %#v, want field map", env.Error.Details)
			}
			if _, ok := details[tt.wantField]; !ok {
				t.Errorf("details = %v, want key %q", details, tt.wantField)
			}
		})
	}
}

func TestCreateUser_MalformedBody(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/users/", "", "just a string")
	expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeBadRequest)
}

func TestListUsers_Paginated(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		s.register(fmt.Sprintf("cook%d", i))
	}

	rec := s.do(http.MethodGet, "/api/users/?page=1&limit=2", "", nil)
	expectStatus(t, rec, http.StatusOK)
	var users []models.User
	env := decodeData(t, rec, &users)

	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if users[0].Username != "cook2" {
		t.Errorf("first user = %s, want newest (cook2)", users[0].Username)
	}
	p := env.Meta.Pagination
	if p == nil || p.Total != 3 || p.Count != 2 || p.Page != 1 || p.Limit != 2 || !p.HasMore {
		t.Errorf("pagination = %+v", p)
	}

	rec = s.do(http.MethodGet, "/api/users?page=2&limit=2", "", nil)
	expectStatus(t, rec, http.StatusOK)
	env = decodeData(t, rec, &users)
	if len(users) != 1 || env.Meta.Pagination.HasMore {
		t.Errorf("page 2: %d users, pagination %+v", len(users), env.Meta.Pagination)
	}
}

func TestGetUser(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register("alice")
	_, bobToken := s.register("bob")

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/", alice.ID), "", nil)
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe/", alice.ID), bobToken, nil)
	expectStatus(t, rec, http.StatusCreated)

	var seen models.User
	decodeData(t, s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/", alice.ID), bobToken, nil), &seen)
	if !seen.IsSubscribed {
		t.Error("is_subscribed = false for a follower")
	}
	decodeData(t, s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/", alice.ID), "", nil), &seen)
	if seen.IsSubscribed {
		t.Error("is_subscribed = true for an anonymous viewer")
	}

	expectErrorCode(t, s.do(http.MethodGet, "/api/users/9999/", "", nil), http.StatusNotFound, ErrCodeNotFound)
	expectErrorCode(t, s.do(http.MethodGet, "/api/users/abc/", "", nil), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.register("alice")

	expectErrorCode(t, s.do(http.MethodGet, "/api/users/me/", "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectErrorCode(t, s.do(http.MethodGet, "/api/users/me/", "garbage", nil), http.StatusUnauthorized, ErrCodeUnauthorized)

	rec := s.do(http.MethodGet, "/api/users/me/", token, nil)
	expectStatus(t, rec, http.StatusOK)
	var me models.User
	decodeData(t, rec, &me)
	if me.ID != alice.ID || me.IsSubscribed {
		t.Errorf("me = %+v, want id %d and is_subscribed false", me, alice.ID)
	}
}

func TestPublicRouteIgnoresInvalidToken(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(http.MethodGet, "/api/users/", "not-a-token", nil), http.StatusOK)
}

func TestSetPassword(t *testing.T) {
	s := newTestServer(t)
	alice, token := s.register("alice")

	rec := s.do(http.MethodPost, "/api/users/set_password/", token, SetPasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "Saffron-Rice-77",
	})
	expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeValidationFailed)

	rec = s.do(http.MethodPost, "/api/users/set_password/", token, SetPasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "123",
	})
	expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeValidationFailed)

	rec = s.do(http.MethodPost, "/api/users/set_password/", token, SetPasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "Saffron-Rice-77",
	})
	expectStatus(t, rec, http.StatusNoContent)

	rec = s.do(http.MethodPost, "/api/auth/token/login/", "", TokenLoginRequest{Email: alice.Email, Password: testPassword})
	expectErrorCode(t, rec, http.StatusBadRequest, ErrCodeBadRequest)
	s.login(alice.Email, "Saffron-Rice-77")

	expectErrorCode(t, s.do(http.MethodPost, "/api/users/set_password/", "", SetPasswordRequest{
		CurrentPassword: "x", NewPassword: "y",
	}), http.StatusUnauthorized, ErrCodeUnauthorized)
}
