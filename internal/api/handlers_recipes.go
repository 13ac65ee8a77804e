// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// ListRecipes handles GET /api/recipes/ with the author, tags, is_favorited
// and is_in_shopping_cart filters.
//
// @Summary List recipes
// @Description Newest first. Favorite and cart filters apply only to an authenticated caller.
// @Tags Recipes
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Param author query int false "Author user ID"
// @Param tags query []string false "Tag slugs, any match" collectionFormat(multi)
// @Param is_favorited query int false "1 to keep favorites only" Enums(0, 1)
// @Param is_in_shopping_cart query int false "1 to keep cart recipes only" Enums(0, 1)
// @Success 200 {object} APIResponse{data=[]models.Recipe} "Recipes with pagination"
// @Failure 400 {object} APIResponse "Invalid filter"
// @Router /api/recipes/ [get]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	req := RecipeListRequest{
		IsFavorited:      getBoolParam(r, "is_favorited"),
		IsInShoppingCart: getBoolParam(r, "is_in_shopping_cart"),
	}
	if author := r.URL.Query().Get("author"); author != "" {
		id, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			writeError(w, r, validation.NewFieldError("author", "numeric", "author must be a user id"))
			return
		}
		req.Author = id
	}
	for _, slug := range r.URL.Query()["tags"] {
		if slug = strings.TrimSpace(slug); slug != "" {
			req.Tags = append(req.Tags, slug)
		}
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeError(w, r, verr)
		return
	}

	page := h.pageFromRequest(r)
	recipes, total, err := h.store.ListRecipes(r.Context(), req.toFilter(auth.ViewerID(r.Context()), page))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	for i := range recipes {
		h.presentRecipe(r, &recipes[i])
	}
	NewResponseWriter(w, r).SuccessWithPagination(recipes, NewPaginationMeta(page, len(recipes), total))
}

// GetRecipe handles GET /api/recipes/{id}/.
//
// @Summary Get a recipe
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} APIResponse{data=models.Recipe} "Recipe"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/ [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recipe, err := h.store.GetRecipe(r.Context(), id, auth.ViewerID(r.Context()))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(h.presentRecipe(r, recipe))
}

// CreateRecipe handles POST /api/recipes/.
//
// @Summary Create a recipe
// @Description The image is a base64 data URI. Ingredients and tags must exist and not repeat.
// @Tags Recipes
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body RecipeRequest true "Recipe"
// @Success 201 {object} APIResponse{data=models.Recipe} "Recipe created"
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Router /api/recipes/ [post]
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		writeError(w, r, validation.NewFieldError("image", "required", "image is required"))
		return
	}

	ctx := r.Context()
	image, err := h.media.SaveDataURI(ctx, req.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	recipe, err := h.store.CreateRecipe(ctx, subject.UserID, req.toInput(image))
	if err != nil {
		h.discardImage(r, image)
		writeStoreError(w, r, err)
		return
	}

	logging.Ctx(ctx).Info().Int64("recipe_id", recipe.ID).Msg("Recipe created")
	h.emit(ctx, events.RecipeCreated, subject.UserID, recipe.ID)
	NewResponseWriter(w, r).Created(h.presentRecipe(r, recipe))
}

// UpdateRecipe handles PATCH /api/recipes/{id}/. Only the author or a
// moderator may edit. The body carries the full recipe; an empty image
// keeps the current one.
//
// @Summary Update a recipe
// @Tags Recipes
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Param body body RecipeRequest true "Recipe"
// @Success 200 {object} APIResponse{data=models.Recipe} "Recipe updated"
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 403 {object} APIResponse "Not the author"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/ [patch]
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	current, err := h.store.GetRecipe(ctx, id, subject.UserID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !h.canModify(w, r, subject, current.Author.ID) {
		return
	}

	var req RecipeRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var image string
	if strings.TrimSpace(req.Image) != "" {
		if image, err = h.media.SaveDataURI(ctx, req.Image); err != nil {
			writeError(w, r, err)
			return
		}
	}

	recipe, err := h.store.UpdateRecipe(ctx, id, subject.UserID, req.toInput(image))
	if err != nil {
		h.discardImage(r, image)
		writeStoreError(w, r, err)
		return
	}
	if image != "" {
		h.discardImage(r, current.Image)
	}

	logging.Ctx(ctx).Info().Int64("recipe_id", id).Msg("Recipe updated")
	h.emit(ctx, events.RecipeUpdated, subject.UserID, id)
	NewResponseWriter(w, r).Success(h.presentRecipe(r, recipe))
}

// DeleteRecipe handles DELETE /api/recipes/{id}/.
//
// @Summary Delete a recipe
// @Tags Recipes
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 204 "Recipe deleted"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 403 {object} APIResponse "Not the author"
// @Failure 404 {object} APIResponse "Recipe not found"
// @Router /api/recipes/{id}/ [delete]
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	authorID, err := h.store.RecipeAuthorID(ctx, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !h.canModify(w, r, subject, authorID) {
		return
	}

	image, err := h.store.DeleteRecipe(ctx, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.discardImage(r, image)

	logging.Ctx(ctx).Info().Int64("recipe_id", id).Int64("author_id", authorID).Msg("Recipe deleted")
	h.emit(ctx, events.RecipeDeleted, subject.UserID, id)
	NewResponseWriter(w, r).NoContent()
}

// canModify writes 403 and returns false unless subject owns the recipe or
// may moderate recipes.
func (h *Handler) canModify(w http.ResponseWriter, r *http.Request, subject *auth.Subject, authorID int64) bool {
	allowed, err := h.enforcer.CanModify(subject, authz.ObjRecipes, authorID)
	if err != nil {
		writeError(w, r, err)
		return false
	}
	if !allowed {
		writeError(w, r, authz.ErrForbidden)
		return false
	}
	return true
}

// discardImage removes a stored image that is no longer referenced.
func (h *Handler) discardImage(r *http.Request, stored string) {
	if err := h.media.Delete(stored); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("path", stored).Msg("Failed to remove recipe image")
	}
}
