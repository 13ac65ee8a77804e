// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package authz

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/logging"
)

// ErrForbidden indicates an authenticated subject lacks permission.
var ErrForbidden = errors.New("you do not have permission to perform this action")

// Middleware enforces the policy on routes.
type Middleware struct {
	enforcer *Enforcer
	onError  auth.ErrorWriter
}

// NewMiddleware creates the middleware. Denials go to onError with
// auth.ErrNoCredentials for anonymous callers and ErrForbidden otherwise.
func NewMiddleware(enforcer *Enforcer, onError auth.ErrorWriter) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			if errors.Is(err, auth.ErrNoCredentials) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		}
	}
	return &Middleware{enforcer: enforcer, onError: onError}
}

// Require allows the request only when the caller's role may perform action
// on object.
func (m *Middleware) Require(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := auth.RoleFromContext(r.Context())
			allowed, err := m.enforcer.Enforce(role, object, action)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
				m.onError(w, r, err)
				return
			}
			if !allowed {
				logging.Ctx(r.Context()).Debug().
					Str("role", role).
					Str("object", object).
					Str("action", action).
					Msg("Authorization denied")
				if auth.SubjectFromContext(r.Context()) == nil {
					m.onError(w, r, auth.ErrNoCredentials)
					return
				}
				m.onError(w, r, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CanModify reports whether subject may edit or delete a resource owned by
// ownerID: the owner always may, other users need the moderate permission
// on object.
func (e *Enforcer) CanModify(subject *auth.Subject, object string, ownerID int64) (bool, error) {
	if subject == nil {
		return false, nil
	}
	if subject.UserID == ownerID {
		return true, nil
	}
	allowed, err := e.Enforce(subject.Role, object, ActModerate)
	if err != nil {
		return false, fmt.Errorf("failed to check moderation rights: %w", err)
	}
	return allowed, nil
}
