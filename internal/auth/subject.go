// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// Standard authentication errors
var (
	// ErrNoCredentials indicates no token was sent.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates a wrong e-mail or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked indicates the token was logged out.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrTooManyAttempts indicates the login throttle rejected the attempt.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// Subject is the authenticated caller of a request.
type Subject struct {
	UserID    int64
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin reports whether the subject has the admin role.
func (s *Subject) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// SubjectFromClaims builds a Subject from validated token claims.
func SubjectFromClaims(claims *Claims) *Subject {
	if claims == nil {
		return nil
	}
	s := &Subject{
		UserID:  claims.UserID,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if s.Role == "" {
		s.Role = models.RoleUser
	}
	return s
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// ContextWithSubject stores the subject in ctx.
func ContextWithSubject(ctx context.Context, s *Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, s)
}

// SubjectFromContext returns the authenticated subject, or nil for an
// anonymous request.
func SubjectFromContext(ctx context.Context) *Subject {
	s, _ := ctx.Value(subjectContextKey).(*Subject)
	return s
}

// ViewerID returns the subject's user id, or 0 for an anonymous request.
func ViewerID(ctx context.Context) int64 {
	if s := SubjectFromContext(ctx); s != nil {
		return s.UserID
	}
	return 0
}

// RoleFromContext returns the subject's role, or models.RoleAnonymous.
func RoleFromContext(ctx context.Context) string {
	if s := SubjectFromContext(ctx); s != nil {
		return s.Role
	}
	return models.RoleAnonymous
}
