// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/foodgram/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewChiMiddlewareConfig(t *testing.T) {
	tests := []struct {
		name         string
		security     config.SecurityConfig
		wantRequests int
		wantWindow   time.Duration
	}{
		{"defaults", config.SecurityConfig{}, 100, time.Minute},
		{"overrides", config.SecurityConfig{RateLimitReqs: 5, RateLimitWindow: time.Second}, 5, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := NewChiMiddlewareConfig(&tt.security)
			if mc.RateLimitRequests != tt.wantRequests || mc.RateLimitWindow != tt.wantWindow {
				t.Errorf("limit = %d per %v, want %d per %v", mc.RateLimitRequests, mc.RateLimitWindow, tt.wantRequests, tt.wantWindow)
			}
		})
	}
}

func TestRateLimit_Throttles(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitRequests = 3
	mc.RateLimitWindow = time.Minute
	handler := NewChiMiddleware(mc).RateLimit()(okHandler())

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		expectStatus(t, send("10.0.0.1:1234"), http.StatusOK)
	}
	expectErrorCode(t, send("10.0.0.1:1234"), http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// Limits are per client address.
	expectStatus(t, send("10.0.0.2:1234"), http.StatusOK)
}

func TestRateLimit_Disabled(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitRequests = 1
	mc.RateLimitDisabled = true
	m := NewChiMiddleware(mc)

	for _, mw := range []func(http.Handler) http.Handler{m.RateLimit(), m.RateLimitAuth(), m.RateLimitExport()} {
		handler := mw(okHandler())
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			expectStatus(t, rec, http.StatusOK)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = []string{"https://foodgram.example"}
	handler := NewChiMiddleware(mc).CORS()(okHandler())

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://foodgram.example", "https://foodgram.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/recipes/", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
