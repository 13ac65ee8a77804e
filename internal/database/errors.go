// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors returned by the store. Callers use errors.Is.
var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists means a unique constraint rejected the write, or the
	// relation being added is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidReference means the write referenced a tag, ingredient or
	// user id that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNotPresent means a relation being removed was never added.
	ErrNotPresent = errors.New("relation not present")

	// ErrSelfSubscription is returned when a user tries to follow themselves.
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
)

// ReferenceError names ids that do not exist or were submitted twice.
type ReferenceError struct {
	Kind string // "tag" or "ingredient"
	IDs  []int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid %s ids: %v", e.Kind, e.IDs)
}

// Unwrap lets errors.Is(err, ErrInvalidReference) match.
func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use it for cleanup in error paths where Close errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
// DuckDB reports these as "Constraint Error: Duplicate key ... violates unique constraint".
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "primary key constraint")
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
// that is worth retrying.
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update")
}
