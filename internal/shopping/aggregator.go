// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package shopping builds the downloadable shopping list for a user's cart.

The Aggregator reads every ingredient line of the recipes in a user's cart,
groups them by (ingredient name, measurement unit) and sums the amounts. The
same name with a different unit is a separate item. Items are ordered by name
and then by unit, so repeated calls over an unchanged cart give identical
output. An empty cart is a valid input and produces an empty list.

Renderers turn the item list into a document:

  - txt: one "<name> - <amount> <unit>" line per item, joined with "\n"
  - pdf: the same lines laid out on A4 pages with go-pdf/fpdf
*/
package shopping

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/foodgram/internal/models"
)

// CartSource supplies the cart snapshot for a user.
type CartSource interface {
	CartLines(ctx context.Context, userID int64) ([]models.CartLine, error)
}

// Aggregator computes shopping lists from a CartSource.
type Aggregator struct {
	source CartSource
}

// NewAggregator creates an Aggregator reading from source.
func NewAggregator(source CartSource) *Aggregator {
	return &Aggregator{source: source}
}

// List returns the aggregated shopping list for userID.
func (a *Aggregator) List(ctx context.Context, userID int64) ([]models.ShoppingItem, error) {
	lines, err := a.source.CartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart of user %d: %w", userID, err)
	}
	return Aggregate(lines), nil
}

type groupKey struct {
	name string
	unit string
}

// Aggregate groups lines by (name, unit), sums their amounts and orders the
// result by name, then unit. It never returns nil.
func Aggregate(lines []models.CartLine) []models.ShoppingItem {
	totals := make(map[groupKey]int64, len(lines))
	for _, l := range lines {
		totals[groupKey{name: l.Name, unit: l.Unit}] += l.Amount
	}

	items := make([]models.ShoppingItem, 0, len(totals))
	for k, amount := range totals {
		items = append(items, models.ShoppingItem{Name: k.name, Unit: k.unit, Amount: amount})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})
	return items
}

// FormatLine renders one item as "<name> - <amount> <unit>".
func FormatLine(item models.ShoppingItem) string {
	return item.Name + " - " + strconv.FormatInt(item.Amount, 10) + " " + item.Unit
}

// RenderText joins the formatted items with "\n". An empty list renders as
// the empty string.
func RenderText(items []models.ShoppingItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = FormatLine(item)
	}
	return strings.Join(lines, "\n")
}
