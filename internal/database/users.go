// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// FieldConflictError reports which unique field rejected a write.
type FieldConflictError struct {
	Field string
}

func (e *FieldConflictError) Error() string {
	return e.Field + " already exists"
}

// Unwrap lets errors.Is(err, ErrAlreadyExists) match.
func (e *FieldConflictError) Unwrap() error {
	return ErrAlreadyExists
}

// userSelect yields the public user columns plus is_subscribed for the
// viewer bound as the first argument.
const userSelect = `SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.role, u.created_at,
	EXISTS (SELECT 1 FROM subscriptions s WHERE s.author_id = u.id AND s.user_id = ?) AS is_subscribed
	FROM users u`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.IsSubscribed); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account. A taken email or username yields a
// *FieldConflictError.
func (db *DB) CreateUser(ctx context.Context, in *models.NewUser) (_ *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "users", start, err) }(time.Now())

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	now := time.Now().UTC()

	var id int64
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkUserConflict(ctx, tx, in.Email, in.Username); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`INSERT INTO users (email, username, first_name, last_name, password_hash, role, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			in.Email, in.Username, in.FirstName, in.LastName, in.PasswordHash, role, now,
		).Scan(&id)
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, &FieldConflictError{Field: "email"}
		}
		if errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:        id,
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
		CreatedAt: now,
	}, nil
}

func checkUserConflict(ctx context.Context, tx *sql.Tx, email, username string) error {
	var emailTaken, usernameTaken bool
	err := tx.QueryRowContext(ctx,
		`SELECT
			EXISTS (SELECT 1 FROM users WHERE email = ?),
			EXISTS (SELECT 1 FROM users WHERE username = ?)`,
		email, username,
	).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	switch {
	case emailTaken:
		return &FieldConflictError{Field: "email"}
	case usernameTaken:
		return &FieldConflictError{Field: "username"}
	}
	return nil
}

// GetUser returns a user with is_subscribed computed for viewerID (0 for anonymous).
func (db *DB) GetUser(ctx context.Context, id, viewerID int64) (_ *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "users", start, err) }(time.Now())

	u, err := scanUser(db.conn.QueryRowContext(ctx, userSelect+` WHERE u.id = ?`, viewerID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// GetUserCredentials returns the account for email including its password hash.
func (db *DB) GetUserCredentials(ctx context.Context, email string) (_ *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "users", start, err) }(time.Now())

	var u models.User
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, email, username, first_name, last_name, role, created_at, password_hash
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user credentials: %w", err)
	}
	return &u, nil
}

// GetPasswordHash returns the stored hash for a user id.
func (db *DB) GetPasswordHash(ctx context.Context, id int64) (_ string, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "users", start, err) }(time.Now())

	var hash string
	err = db.conn.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE id = ?`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash, nil
}

// ListUsers returns a page of users, newest first, and the total count.
func (db *DB) ListUsers(ctx context.Context, viewerID int64, limit, offset int) (_ []models.User, _ int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "users", start, err) }(time.Now())

	var total int64
	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, userSelect+` ORDER BY u.id DESC LIMIT ? OFFSET ?`, viewerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer closeQuietly(rows)

	users := make([]models.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, total, nil
}

// SetPassword replaces a user's password hash.
func (db *DB) SetPassword(ctx context.Context, id int64, hash string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("UPDATE", "users", start, err) }(time.Now())

	res, err := db.conn.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
