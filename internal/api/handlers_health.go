// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"context"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status        string  `json:"status"`
	Database      string  `json:"database,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HealthLive handles GET /health/live. It answers 200 while the process
// serves requests.
//
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Process is up"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready. It answers 503 when the store does
// not respond to a ping.
//
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Ready"
// @Failure 503 {object} APIResponse "Database is not reachable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		rw := NewResponseWriter(w, r)
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database is not reachable",
			HealthStatus{Status: "not_ready", Database: "unreachable", UptimeSeconds: time.Since(h.startTime).Seconds()})
		return
	}
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:        "ready",
		Database:      "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}
