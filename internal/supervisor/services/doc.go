// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package services adapts Foodgram components to suture.Service so the
// supervisor tree can run and restart them.
//
//   - HTTPServerService: http.Server with graceful Shutdown
//   - RunnerService: anything with Run(ctx) error, e.g. the events.Bus router
//   - PeriodicService: runs named tasks on a ticker (janitor work)
package services
