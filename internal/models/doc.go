// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package models defines the data structures shared by the store, the shopping
list aggregator and the HTTP API.

Model Categories:

 1. Accounts:
    - User: registered account with its role and, per viewer, is_subscribed
    - Subscription: an author as seen from the subscriptions list

 2. Catalog:
    - Tag: recipe label with color and slug
    - Ingredient: (name, measurement_unit) pair, unique

 3. Recipes:
    - Recipe: full representation with tags, author and ingredient amounts
    - RecipeShort: compact form returned by favorite/cart endpoints
    - RecipeInput: validated write model used by create and update
    - RecipeFilter: list filters and paging

 4. Shopping list:
    - CartLine: one ingredient line of a recipe in a user's cart
    - ShoppingItem: aggregated (name, unit) total

JSON tags follow the public API field names. Fields tagged "-" never leave
the server.
*/
package models
