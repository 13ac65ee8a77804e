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

// Subscribe makes userID follow authorID and returns the author as seen by
// the new subscriber, with up to recipesLimit recipes (all when <= 0).
func (db *DB) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (_ *models.Subscription, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("INSERT", "subscriptions", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, authorID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		if userID == authorID {
			return ErrSelfSubscription
		}

		var present bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = ? AND author_id = ?)`,
			userID, authorID,
		).Scan(&present); err != nil {
			return err
		}
		if present {
			return ErrAlreadyExists
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO subscriptions (user_id, author_id, created_at) VALUES (?, ?, ?)`,
			userID, authorID, time.Now().UTC())
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrSelfSubscription):
			return nil, err
		case isUniqueConstraintError(err):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	subs, err := db.hydrateSubscriptions(ctx, db.conn, []int64{authorID}, userID, recipesLimit)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, ErrNotFound
	}
	return &subs[0], nil
}

// Unsubscribe removes a subscription. It returns ErrNotFound for an unknown
// author and ErrNotPresent when userID does not follow authorID.
func (db *DB) Unsubscribe(ctx context.Context, userID, authorID int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("DELETE", "subscriptions", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, authorID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE user_id = ? AND author_id = ?`, userID, authorID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotPresent
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotPresent) {
			return err
		}
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// ListSubscriptions returns a page of the authors userID follows, most
// recently followed first, and the total count.
func (db *DB) ListSubscriptions(ctx context.Context, userID int64, recipesLimit, limit, offset int) (_ []models.Subscription, _ int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("SELECT", "subscriptions", start, err) }(time.Now())

	var total int64
	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT author_id FROM subscriptions WHERE user_id = ?
		 ORDER BY created_at DESC, author_id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	var authorIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			closeQuietly(rows)
			return nil, 0, fmt.Errorf("failed to scan subscription: %w", err)
		}
		authorIDs = append(authorIDs, id)
	}
	if err = rows.Err(); err != nil {
		closeQuietly(rows)
		return nil, 0, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	closeQuietly(rows)

	subs, err := db.hydrateSubscriptions(ctx, db.conn, authorIDs, userID, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// hydrateSubscriptions loads authors in the given order together with their
// recipe counts and newest recipes.
func (db *DB) hydrateSubscriptions(ctx context.Context, q queryer, authorIDs []int64, viewerID int64, recipesLimit int) ([]models.Subscription, error) {
	subs := make([]models.Subscription, 0, len(authorIDs))
	if len(authorIDs) == 0 {
		return subs, nil
	}

	users, err := loadUsers(ctx, q, authorIDs, viewerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(authorIDs))
	recipes := make(map[int64][]models.RecipeShort, len(authorIDs))

	rows, err := q.QueryContext(ctx,
		`SELECT author_id, id, name, image, cooking_time,
			row_number() OVER (PARTITION BY author_id ORDER BY pub_date DESC, id DESC) AS rn
		 FROM recipes WHERE author_id IN (`+placeholders(len(authorIDs))+`)
		 ORDER BY author_id, rn`, int64Args(authorIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load author recipes: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var authorID, rn int64
		var r models.RecipeShort
		if err := rows.Scan(&authorID, &r.ID, &r.Name, &r.Image, &r.CookingTime, &rn); err != nil {
			return nil, fmt.Errorf("failed to scan author recipe: %w", err)
		}
		counts[authorID]++
		if recipesLimit <= 0 || rn <= int64(recipesLimit) {
			recipes[authorID] = append(recipes[authorID], r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author recipes: %w", err)
	}

	for _, id := range authorIDs {
		u, ok := users[id]
		if !ok {
			continue
		}
		list := recipes[id]
		if list == nil {
			list = []models.RecipeShort{}
		}
		subs = append(subs, models.Subscription{User: u, Recipes: list, RecipesCount: counts[id]})
	}
	return subs, nil
}
