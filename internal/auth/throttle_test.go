// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"testing"
	"time"
)

func TestLoginThrottle(t *testing.T) {
	th := NewLoginThrottle(3, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !th.Allow("chef@example.com") {
			t.Fatalf("attempt %d rejected", i+1)
		}
	}
	if th.Allow("Chef@Example.com ") {
		t.Error("fourth attempt allowed; address normalization failed or bucket too large")
	}
	if !th.Allow("other@example.com") {
		t.Error("other address throttled")
	}

	now = now.Add(20 * time.Second)
	if !th.Allow("chef@example.com") {
		t.Error("attempt after refill interval rejected")
	}

	th.Reset("chef@example.com")
	if !th.Allow("chef@example.com") {
		t.Error("attempt after Reset rejected")
	}
}

func TestLoginThrottle_Disabled(t *testing.T) {
	th := NewLoginThrottle(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !th.Allow("x@example.com") {
			t.Fatal("disabled throttle rejected an attempt")
		}
	}
	if th.Size() != 0 {
		t.Errorf("disabled throttle tracked %d addresses", th.Size())
	}
}

func TestLoginThrottle_Cleanup(t *testing.T) {
	th := NewLoginThrottle(5, time.Minute)
	now := time.Now()
	th.now = func() time.Time { return now }

	th.Allow("a@example.com")
	now = now.Add(5 * time.Minute)
	th.Allow("b@example.com")
	now = now.Add(6 * time.Minute)

	if removed := th.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() removed %d, want 1", removed)
	}
	if th.Size() != 1 {
		t.Errorf("Size() = %d, want 1", th.Size())
	}
}
