// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeServer struct {
	mu        sync.Mutex
	listenErr error
	stopped   chan struct{}
	shutdowns int
	closeOnce sync.Once
}

func newFakeServer(listenErr error) *fakeServer {
	return &fakeServer{listenErr: listenErr, stopped: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdowns++
	f.mu.Unlock()
	f.closeOnce.Do(func() { close(f.stopped) })
	return nil
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	srv := newFakeServer(nil)
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if srv.shutdowns != 1 {
		t.Errorf("Shutdown called %d times, want 1", srv.shutdowns)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestHTTPServerService_ListenError(t *testing.T) {
	boom := errors.New("address in use")
	svc := NewHTTPServerService(newFakeServer(boom), 0)

	if err := svc.Serve(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Serve() error = %v, want %v", err, boom)
	}
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestRunnerService(t *testing.T) {
	boom := errors.New("router crashed")

	tests := []struct {
		name    string
		runner  runnerFunc
		cancel  bool
		wantErr error
		wantAny bool
	}{
		{"failure wrapped", func(context.Context) error { return boom }, false, boom, false},
		{"early nil is a failure", func(context.Context) error { return nil }, false, nil, true},
		{"cancel", func(ctx context.Context) error { <-ctx.Done(); return nil }, true, context.Canceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			if tt.cancel {
				cancel()
			} else {
				defer cancel()
			}
			err := NewRunnerService("events", tt.runner).Serve(ctx)
			if tt.wantAny {
				if err == nil {
					t.Error("Serve() = nil, want an error")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Serve() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeriodicService(t *testing.T) {
	var ok, failed atomic.Int32
	svc := NewPeriodicService("janitor", 5*time.Millisecond,
		Task{Name: "fails", Run: func(context.Context) error {
			failed.Add(1)
			return errors.New("nope")
		}},
		Task{Name: "counts", Run: func(context.Context) error {
			ok.Add(1)
			return nil
		}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for ok.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v", err)
	}
	if ok.Load() < 3 {
		t.Errorf("counting task ran %d times, want >= 3", ok.Load())
	}
	if failed.Load() < ok.Load() {
		t.Errorf("failing task ran %d times, counting task %d; a failure must not skip later runs", failed.Load(), ok.Load())
	}
}
