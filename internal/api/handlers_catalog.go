// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
)

// Tags and ingredients are small reference lists and are not paginated.

// ListTags handles GET /api/tags/.
//
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.Tag} "Tags"
// @Router /api/tags/ [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.ListTags(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	NewResponseWriter(w, r).Success(tags)
}

// GetTag handles GET /api/tags/{id}/.
//
// @Summary Get a tag
// @Tags Catalog
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} APIResponse{data=models.Tag} "Tag"
// @Failure 404 {object} APIResponse "Tag not found"
// @Router /api/tags/{id}/ [get]
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tag, err := h.store.GetTag(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(tag)
}

// CreateTag handles POST /api/tags/ (admin only).
//
// @Summary Create a tag
// @Description Admin only. Name, color and slug must be unique.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body TagCreateRequest true "Tag"
// @Success 201 {object} APIResponse{data=models.Tag} "Tag created"
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 403 {object} APIResponse "Forbidden"
// @Router /api/tags/ [post]
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagCreateRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	tag, err := h.store.CreateTag(r.Context(), req.toModel())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("tag_id", tag.ID).Str("slug", tag.Slug).Msg("Tag created")
	NewResponseWriter(w, r).Created(tag)
}

// ListIngredients handles GET /api/ingredients/?name=<prefix>.
//
// @Summary List ingredients
// @Tags Catalog
// @Produce json
// @Param name query string false "Case-insensitive name prefix"
// @Success 200 {object} APIResponse{data=[]models.Ingredient} "Ingredients"
// @Router /api/ingredients/ [get]
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	prefix := strings.TrimSpace(r.URL.Query().Get("name"))
	ingredients, err := h.store.ListIngredients(r.Context(), prefix)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	NewResponseWriter(w, r).Success(ingredients)
}

// GetIngredient handles GET /api/ingredients/{id}/.
//
// @Summary Get an ingredient
// @Tags Catalog
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} APIResponse{data=models.Ingredient} "Ingredient"
// @Failure 404 {object} APIResponse "Ingredient not found"
// @Router /api/ingredients/{id}/ [get]
func (h *Handler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ingredient, err := h.store.GetIngredient(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(ingredient)
}

// CreateIngredient handles POST /api/ingredients/ (admin only). A repeated
// (name, measurement_unit) pair is rejected.
//
// @Summary Create an ingredient
// @Tags Catalog
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body IngredientCreateRequest true "Ingredient"
// @Success 201 {object} APIResponse{data=models.Ingredient} "Ingredient created"
// @Failure 400 {object} APIResponse "Validation failed or duplicate"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 403 {object} APIResponse "Forbidden"
// @Router /api/ingredients/ [post]
func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req IngredientCreateRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ingredient, err := h.store.CreateIngredient(r.Context(), &models.Ingredient{
		Name:            strings.TrimSpace(req.Name),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("ingredient_id", ingredient.ID).Msg("Ingredient created")
	NewResponseWriter(w, r).Created(ingredient)
}
