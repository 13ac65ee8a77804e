// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// @title Foodgram API
// @version 1.0
// @description Recipe sharing with favorites, author subscriptions and an aggregated shopping list.
// @description
// @description ## Authentication
// @description
// @description Obtain a token with `POST /api/auth/token/login/` and send it as
// @description `Authorization: Token <token>` (a `Bearer` prefix is accepted too).
// @description Reads are public; writes require a token.
// @description
// @description ## Error Responses
// @description
// @description All JSON responses use one envelope:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "VALIDATION_FAILED",
// @description     "message": "Human-readable error message",
// @description     "details": {"field": ["message"]},
// @description     "request_id": "..."
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/foodgram/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description "Token <token>" from /api/auth/token/login/.
//
// @tag.name Auth
// @tag.description Token login and logout
//
// @tag.name Users
// @tag.description Registration, profiles, passwords and author subscriptions
//
// @tag.name Catalog
// @tag.description Tags and ingredients reference data
//
// @tag.name Recipes
// @tag.description Recipe listing, filtering and authoring
//
// @tag.name Favorites
// @tag.description Per-user favorite recipes
//
// @tag.name Shopping
// @tag.description Shopping cart and the aggregated shopping list download
//
// @tag.name Health
// @tag.description Liveness and readiness checks
package main
