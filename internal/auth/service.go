// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
)

// CredentialStore looks up an account with its password hash. A missing
// account is reported as database.ErrNotFound.
type CredentialStore interface {
	GetUserCredentials(ctx context.Context, email string) (*models.User, error)
}

// Service runs the login and logout flows.
type Service struct {
	store       CredentialStore
	jwt         *JWTManager
	revocations RevocationStore
	throttle    *LoginThrottle
}

// NewService wires the login flow. throttle may be nil.
func NewService(store CredentialStore, jwt *JWTManager, revocations RevocationStore, throttle *LoginThrottle) *Service {
	return &Service{
		store:       store,
		jwt:         jwt,
		revocations: revocations,
		throttle:    throttle,
	}
}

// Login verifies the e-mail and password and issues a token. It returns
// ErrTooManyAttempts when the address is throttled and ErrInvalidCredentials
// for an unknown address or wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)
	if s.throttle != nil && !s.throttle.Allow(email) {
		metrics.AuthLoginAttempts.WithLabelValues("throttled").Inc()
		return "", nil, ErrTooManyAttempts
	}

	user, err := s.store.GetUserCredentials(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		metrics.AuthLoginAttempts.WithLabelValues("failure").Inc()
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.AuthLoginAttempts.WithLabelValues("failure").Inc()
			logging.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("Login with wrong password")
		}
		return "", nil, err
	}

	token, _, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	if s.throttle != nil {
		s.throttle.Reset(email)
	}
	metrics.AuthLoginAttempts.WithLabelValues("success").Inc()
	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("User logged in")
	return token, user, nil
}

// Logout revokes the subject's token until it expires.
func (s *Service) Logout(ctx context.Context, subject *Subject) error {
	if subject == nil || subject.TokenID == "" {
		return ErrNoCredentials
	}
	err := s.revocations.Revoke(ctx, &RevokedToken{
		JTI:       subject.TokenID,
		UserID:    subject.UserID,
		RevokedAt: time.Now().UTC(),
		ExpiresAt: subject.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	logging.Ctx(ctx).Info().Int64("user_id", subject.UserID).Msg("User logged out")
	return nil
}

// Resolve validates a raw token and checks it has not been revoked.
func (s *Service) Resolve(ctx context.Context, token string) (*Subject, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return SubjectFromClaims(claims), nil
}
