// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const revokedKeyPrefix = "revoked:"

// RevokedToken is the value stored for a revoked jti.
type RevokedToken struct {
	JTI       string    `json:"jti"`
	UserID    int64     `json:"user_id"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RevocationStore tracks tokens revoked before their expiry.
type RevocationStore interface {
	// Revoke records the token until expiresAt. Revoking an already expired
	// token is a no-op.
	Revoke(ctx context.Context, entry *RevokedToken) error

	// IsRevoked reports whether jti has been revoked and has not expired.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	Close() error
}

// BadgerRevocationStore keeps revoked jti values as BadgerDB entries whose
// TTL ends when the token itself expires.
type BadgerRevocationStore struct {
	db *badger.DB
}

// OpenRevocationStore opens a BadgerDB at path. An empty path opens an
// in-memory database, which loses revocations on restart.
func OpenRevocationStore(path string) (*BadgerRevocationStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for token revocation: %w", err)
	}
	return &BadgerRevocationStore{db: db}, nil
}

func revokedKey(jti string) []byte {
	return []byte(revokedKeyPrefix + jti)
}

// Revoke implements RevocationStore.
func (s *BadgerRevocationStore) Revoke(ctx context.Context, entry *RevokedToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal revoked token: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(revokedKey(entry.JTI), data).WithTTL(ttl)
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("set revoked token: %w", err)
		}
		return nil
	})
}

// IsRevoked implements RevocationStore.
func (s *BadgerRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	revoked := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(revokedKey(jti))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get revoked token: %w", err)
		}
		revoked = true
		return nil
	})
	return revoked, err
}

// Count returns the number of live revocation entries.
func (s *BadgerRevocationStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(revokedKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close implements RevocationStore.
func (s *BadgerRevocationStore) Close() error {
	return s.db.Close()
}
