// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/foodgram/internal/config"
)

func TestTokenLogin(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register("alice")

	tests := []struct {
		name       string
		req        TokenLoginRequest
		wantStatus int
		wantCode   string
	}{
		{"wrong password", TokenLoginRequest{Email: alice.Email, Password: "nope-nope-nope"}, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown email", TokenLoginRequest{Email: "ghost@example.com", Password: testPassword}, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing password", TokenLoginRequest{Email: alice.Email}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"bad email", TokenLoginRequest{Email: "alice", Password: testPassword}, http.StatusBadRequest, ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrorCode(t, s.do(http.MethodPost, "/api/auth/token/login/", "", tt.req), tt.wantStatus, tt.wantCode)
		})
	}

	if token := s.login(alice.Email, testPassword); token == "" {
		t.Fatal("empty token")
	}
}

func TestTokenLogin_Throttled(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.LoginAttempts = 3
	})
	alice, _ := s.register("alice")

	wrong := TokenLoginRequest{Email: alice.Email, Password: "wrong-wrong-wrong"}
	for i := 0; i < 3; i++ {
		expectErrorCode(t, s.do(http.MethodPost, "/api/auth/token/login/", "", wrong), http.StatusBadRequest, ErrCodeBadRequest)
	}
	expectErrorCode(t, s.do(http.MethodPost, "/api/auth/token/login/", "", wrong), http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// Other addresses are unaffected.
	bob, _ := s.register("bob")
	s.login(bob.Email, testPassword)
}

func TestTokenLogout(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register("alice")

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	expectStatus(t, s.do(http.MethodPost, "/api/auth/token/logout/", token, nil), http.StatusNoContent)

	expectErrorCode(t, s.do(http.MethodGet, "/api/users/me/", token, nil), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectErrorCode(t, s.do(http.MethodPost, "/api/auth/token/logout/", token, nil), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectErrorCode(t, s.do(http.MethodPost, "/api/auth/token/logout/", "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)

	// A revoked token on a public route falls back to anonymous access.
	expectStatus(t, s.do(http.MethodGet, "/api/recipes/", token, nil), http.StatusOK)
}
