// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/foodgram/internal/logging"
)

// ErrorWriter renders an authentication failure. The API layer supplies one
// that writes its JSON error envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates requests from their Authorization header.
type Middleware struct {
	service *Service
	onError ErrorWriter
}

// NewMiddleware creates the middleware. A nil onError writes a plain 401.
func NewMiddleware(service *Service, onError ErrorWriter) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}
	}
	return &Middleware{service: service, onError: onError}
}

// ExtractToken returns the token from "Token <t>" or "Bearer <t>".
func ExtractToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoCredentials
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrInvalidToken
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return token, nil
	}
	return "", ErrInvalidToken
}

// Authenticate rejects requests without a valid, unrevoked token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ExtractToken(r.Header.Get("Authorization"))
		if err != nil {
			m.onError(w, r, err)
			return
		}
		subject, err := m.service.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrInvalidToken) && !errors.Is(err, ErrTokenRevoked) {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Token resolution failed")
			}
			m.onError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSubject(r, subject)))
	})
}

// Optional attaches the subject when a valid token is present and serves
// the request anonymously otherwise.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ExtractToken(r.Header.Get("Authorization"))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		subject, err := m.service.Resolve(r.Context(), token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid token on public route")
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSubject(r, subject)))
	})
}

func withSubject(r *http.Request, s *Subject) context.Context {
	ctx := ContextWithSubject(r.Context(), s)
	return logging.ContextWithUserID(ctx, s.UserID)
}
