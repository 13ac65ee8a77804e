// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// scope is the request-scoped data Ctx adds to log lines. It is stored by
// value, so every ContextWith* call yields an independent copy.
type scope struct {
	correlationID string
	requestID     string
	userID        int64
	logger        *zerolog.Logger
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, update func(*scope)) context.Context {
	s := scopeFrom(ctx)
	update(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

// GenerateCorrelationID returns a short id for tying log lines together.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withScope(ctx, func(s *scope) { s.correlationID = id })
}

func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

func CorrelationIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).correlationID
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withScope(ctx, func(s *scope) { s.requestID = id })
}

func RequestIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// ContextWithUserID records the authenticated user.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return withScope(ctx, func(s *scope) { s.userID = userID })
}

// UserIDFromContext returns 0 for anonymous requests.
func UserIDFromContext(ctx context.Context) int64 {
	return scopeFrom(ctx).userID
}

// ContextWithLogger makes logger the base for Ctx.
//
//nolint:gocritic // zerolog.Logger is passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return withScope(ctx, func(s *scope) { s.logger = &logger })
}

// LoggerFromContext returns the logger stored with ContextWithLogger or the
// global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if l := scopeFrom(ctx).logger; l != nil {
		return *l
	}
	return Logger()
}

// Ctx is the logger handlers and the store use:
//
//	logging.Ctx(ctx).Info().Int64("recipe_id", id).Msg("Recipe created")
//
// It carries correlation_id, request_id and user_id when they are set.
func Ctx(ctx context.Context) *zerolog.Logger {
	s := scopeFrom(ctx)
	base := Logger()
	if s.logger != nil {
		base = *s.logger
	}
	if s.correlationID == "" && s.requestID == "" && s.userID == 0 {
		return &base
	}

	fields := base.With()
	if s.correlationID != "" {
		fields = fields.Str("correlation_id", s.correlationID)
	}
	if s.requestID != "" {
		fields = fields.Str("request_id", s.requestID)
	}
	if s.userID != 0 {
		fields = fields.Int64("user_id", s.userID)
	}
	l := fields.Logger()
	return &l
}

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
