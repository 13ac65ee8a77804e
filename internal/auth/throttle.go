// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginThrottle limits login attempts per e-mail address. Each address gets
// a bucket of `attempts` tokens refilled once per window.
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type throttleEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginThrottle allows attempts logins per window for each address.
// attempts <= 0 disables throttling.
func NewLoginThrottle(attempts int, window time.Duration) *LoginThrottle {
	if window <= 0 {
		window = time.Minute
	}
	limit := rate.Inf
	if attempts > 0 {
		limit = rate.Every(window / time.Duration(attempts))
	}
	return &LoginThrottle{
		limiters: make(map[string]*throttleEntry),
		rate:     limit,
		burst:    attempts,
		idle:     window * 10,
		now:      time.Now,
	}
}

func throttleKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Allow consumes one attempt for email and reports whether it was allowed.
func (t *LoginThrottle) Allow(email string) bool {
	if t.rate == rate.Inf {
		return true
	}
	key := throttleKey(email)
	now := t.now()

	t.mu.Lock()
	entry, ok := t.limiters[key]
	if !ok {
		entry = &throttleEntry{limiter: rate.NewLimiter(t.rate, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	t.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Reset forgets the attempts for email, used after a successful login.
func (t *LoginThrottle) Reset(email string) {
	t.mu.Lock()
	delete(t.limiters, throttleKey(email))
	t.mu.Unlock()
}

// Cleanup drops buckets that have been idle for ten windows and returns how
// many were removed.
func (t *LoginThrottle) Cleanup() int {
	threshold := t.now().Add(-t.idle)

	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for key, entry := range t.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(t.limiters, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked addresses.
func (t *LoginThrottle) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}
