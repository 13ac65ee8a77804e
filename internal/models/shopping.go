// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package models

// CartLine is one ingredient line of one recipe in a user's shopping cart,
// as read from the store.
type CartLine struct {
	RecipeID int64
	Name     string
	Unit     string
	Amount   int64
}

// ShoppingItem is the aggregated total for one (name, unit) pair.
type ShoppingItem struct {
	Name   string `json:"name"`
	Unit   string `json:"measurement_unit"`
	Amount int64  `json:"amount"`
}
