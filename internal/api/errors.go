// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/shopping"
	"github.com/tomtom215/foodgram/internal/validation"
)

var (
	// ErrInvalidID indicates a path id that is not a positive integer.
	ErrInvalidID = errors.New("id must be a positive integer")

	// ErrInvalidBody indicates a request body that is not valid JSON.
	ErrInvalidBody = errors.New("request body must be a valid JSON object")
)

// writeError maps err to a status and code and writes the envelope.
// Unrecognized errors become INTERNAL_ERROR.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	if !writeKnownError(rw, err) {
		rw.InternalError(err)
	}
}

// writeStoreError is writeError for store calls: unrecognized errors become
// DATABASE_ERROR.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	if !writeKnownError(rw, err) {
		rw.DatabaseError(err)
	}
}

// writeKnownError writes the response for errors with a defined mapping and
// reports whether it did.
func writeKnownError(rw *ResponseWriter, err error) bool {
	var (
		verr     *validation.RequestValidationError
		conflict *database.FieldConflictError
		refErr   *database.ReferenceError
	)

	switch {
	case errors.As(err, &verr):
		rw.ValidationError(verr.Error(), verr.FieldMessages())
	case errors.As(err, &conflict):
		rw.ValidationError(conflict.Error(), map[string][]string{conflict.Field: {conflict.Error()}})
	case errors.As(err, &refErr):
		field := refErr.Kind + "s"
		rw.ValidationError(refErr.Error(), map[string][]string{field: {refErr.Error()}})
	case errors.Is(err, media.ErrInvalidImage), errors.Is(err, media.ErrImageTooLarge):
		rw.ValidationError(err.Error(), map[string][]string{"image": {err.Error()}})
	case errors.Is(err, shopping.ErrUnsupportedFormat):
		rw.ValidationError(err.Error(), map[string][]string{"format": {err.Error()}})

	case errors.Is(err, database.ErrNotFound):
		rw.NotFound("Not found")
	case errors.Is(err, database.ErrAlreadyExists),
		errors.Is(err, database.ErrNotPresent),
		errors.Is(err, database.ErrSelfSubscription),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidBody):
		rw.BadRequest(err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		rw.BadRequest("Unable to log in with provided credentials")

	case errors.Is(err, auth.ErrNoCredentials):
		rw.Unauthorized("Authentication credentials were not provided")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenRevoked):
		rw.Unauthorized("Invalid token")
	case errors.Is(err, authz.ErrForbidden):
		rw.Forbidden(err.Error())
	case errors.Is(err, auth.ErrTooManyAttempts):
		rw.TooManyRequests("Too many login attempts, try again later")
	default:
		return false
	}
	return true
}
