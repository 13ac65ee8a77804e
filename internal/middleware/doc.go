// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package middleware provides the infrastructure middleware of the HTTP stack.

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - Metrics: Prometheus request counters, latency and in-flight gauge, labeled
    by chi route pattern rather than raw path
  - AccessLog: one structured log line per request, warning on slow requests

All three are plain func(http.Handler) http.Handler and mount with chi's
Use. Authentication and authorization live in the auth and authz packages.

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.AccessLog(500 * time.Millisecond))
*/
package middleware
