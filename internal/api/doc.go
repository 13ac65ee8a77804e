// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package api provides the HTTP REST API layer for Foodgram.

Key Components:

  - Router: chi route table and middleware stack
  - Handler: request handlers backed by the Store interface
  - Response formatting: a JSON envelope with request id, timing and pagination
  - Error mapping: store, auth and validation errors to status codes and codes
  - Rate limiting: go-chi/httprate limiters for the API, token and export routes
  - CORS: go-chi/cors with explicit origins

API Categories:

1. Accounts (/api/users/, /api/auth/token/):
  - Registration, profile lookup, current user and password change
  - Token login and logout
  - Subscriptions to authors, with recipes_limit

2. Catalog (/api/tags/, /api/ingredients/):
  - Read by anyone, written by administrators
  - Ingredient search by case-insensitive name prefix

3. Recipes (/api/recipes/):
  - List with author, tags, is_favorited and is_in_shopping_cart filters
  - Create, update and delete by the author; administrators may moderate
  - Favorites and shopping cart toggles
  - download_shopping_cart: the aggregated cart as text or PDF

4. Operations:
  - /health/live and /health/ready
  - /metrics (Prometheus)
  - Uploaded recipe images below the configured media prefix

Response Format:

Every JSON endpoint answers with:

	{
	    "success": true,
	    "data": {...},
	    "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors set success to false and carry error.code, error.message and, for
VALIDATION_FAILED, error.details keyed by field name. List endpoints add
meta.pagination with total, count, page, limit and has_more.

Authentication:

Clients send "Authorization: Token <jwt>" (Bearer is accepted too). Public
routes treat a missing or invalid token as an anonymous caller; routes that
need an account answer 401. Role checks go through the Casbin enforcer in
internal/authz, and ownership checks (recipe edits) are made per handler.
*/
package api
