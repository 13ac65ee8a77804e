// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
)

// AddFavorite handles POST /api/recipes/{id}/favorite/.
//
// @Summary Add a recipe to favorites
// @Tags Favorites
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} APIResponse{data=models.RecipeShort} "Favorited"
// @Failure 400 {object} APIResponse "Already in favorites"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/favorite/ [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.addRelation(w, r, h.store.AddFavorite, events.FavoriteAdded)
}

// RemoveFavorite handles DELETE /api/recipes/{id}/favorite/.
//
// @Summary Remove a recipe from favorites
// @Tags Favorites
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 204 "Removed"
// @Failure 400 {object} APIResponse "Not in favorites"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/favorite/ [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.removeRelation(w, r, h.store.RemoveFavorite, events.FavoriteRemoved)
}

// AddToCart handles POST /api/recipes/{id}/shopping_cart/.
//
// @Summary Add a recipe to the shopping cart
// @Tags Shopping
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} APIResponse{data=models.RecipeShort} "Added"
// @Failure 400 {object} APIResponse "Already in the cart"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/shopping_cart/ [post]
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.addRelation(w, r, h.store.AddToCart, events.CartAdded)
}

// RemoveFromCart handles DELETE /api/recipes/{id}/shopping_cart/.
//
// @Summary Remove a recipe from the shopping cart
// @Tags Shopping
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 204 "Removed"
// @Failure 400 {object} APIResponse "Not in the cart"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/shopping_cart/ [delete]
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.removeRelation(w, r, h.store.RemoveFromCart, events.CartRemoved)
}

type addFunc func(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error)

type removeFunc func(ctx context.Context, userID, recipeID int64) error

// addRelation answers 201 with the short recipe, 404 for an unknown recipe
// and 400 when the pair already exists.
func (h *Handler) addRelation(w http.ResponseWriter, r *http.Request, add addFunc, activity events.Type) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	short, err := add(r.Context(), subject.UserID, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.emit(r.Context(), activity, subject.UserID, id)
	NewResponseWriter(w, r).Created(h.presentShort(r, short))
}

// removeRelation answers 204, 404 for an unknown recipe and 400 when the
// pair was never added.
func (h *Handler) removeRelation(w http.ResponseWriter, r *http.Request, remove removeFunc, activity events.Type) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := remove(r.Context(), subject.UserID, id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.emit(r.Context(), activity, subject.UserID, id)
	NewResponseWriter(w, r).NoContent()
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart/.
// The format query parameter (pdf or txt) overrides the configured default.
// An empty cart yields an empty document, not an error.
//
// @Summary Download the shopping list
// @Description Sums ingredient amounts across every recipe in the cart, one line per name and unit.
// @Tags Shopping
// @Produce application/pdf
// @Produce plain
// @Security TokenAuth
// @Param format query string false "Document format" Enums(pdf, txt)
// @Success 200 {file} file "Shopping list attachment"
// @Failure 400 {object} APIResponse "Unsupported format"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 429 {object} APIResponse "Export rate limit exceeded"
// @Router /api/recipes/download_shopping_cart/ [get]
func (h *Handler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	doc, err := h.exporter.Export(r.Context(), subject.UserID, r.URL.Query().Get("format"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().
		Int64("user_id", subject.UserID).
		Str("file", doc.Filename).
		Int("items", doc.Items).
		Msg("Shopping list downloaded")
	NewResponseWriter(w, r).Download(doc.ContentType, doc.ContentDisposition(), doc.Body)
}
