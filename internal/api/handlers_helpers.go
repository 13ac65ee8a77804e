// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// bodyOverhead is allowed on top of the base64-encoded image size.
const bodyOverhead = 1 << 20

// maxBodyBytes bounds request bodies: a recipe with the largest image
// base64-encodes to 4/3 of the image size.
func (h *Handler) maxBodyBytes() int64 {
	return h.config.API.MaxImageBytes*4/3 + bodyOverhead
}

// decodeAndValidate reads a JSON body into v and validates it.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes())
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr
	}
	return nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getBoolParam reports whether a flag parameter is set to 1 or true.
func getBoolParam(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "1", "true":
		return true
	}
	return false
}

// Page is a 1-based page of a list.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of items before the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// pageFromRequest reads page and limit, falling back to the configured
// default size and capping at the maximum.
func (h *Handler) pageFromRequest(r *http.Request) Page {
	p := Page{
		Number: getIntParam(r, "page", 1),
		Limit:  getIntParam(r, "limit", h.config.API.DefaultPageSize),
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = h.config.API.DefaultPageSize
	}
	if p.Limit > h.config.API.MaxPageSize {
		p.Limit = h.config.API.MaxPageSize
	}
	return p
}

// requireSubject returns the authenticated caller. Routes that call it sit
// behind auth.Middleware.Authenticate, so a missing subject is an internal
// wiring problem reported as 401.
func requireSubject(w http.ResponseWriter, r *http.Request) (*auth.Subject, bool) {
	s := auth.SubjectFromContext(r.Context())
	if s == nil {
		writeError(w, r, auth.ErrNoCredentials)
		return nil, false
	}
	return s, true
}

// absoluteURL turns a path into a URL on the host the request came in on.
func absoluteURL(r *http.Request, p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + p
}

// imageURL maps a stored image path to its absolute URL.
func (h *Handler) imageURL(r *http.Request, stored string) string {
	return absoluteURL(r, h.media.URL(stored))
}

func (h *Handler) presentRecipe(r *http.Request, recipe *models.Recipe) *models.Recipe {
	recipe.Image = h.imageURL(r, recipe.Image)
	if recipe.Tags == nil {
		recipe.Tags = []models.Tag{}
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []models.RecipeIngredient{}
	}
	return recipe
}

func (h *Handler) presentShort(r *http.Request, short *models.RecipeShort) *models.RecipeShort {
	short.Image = h.imageURL(r, short.Image)
	return short
}

func (h *Handler) presentSubscription(r *http.Request, sub *models.Subscription) *models.Subscription {
	if sub.Recipes == nil {
		sub.Recipes = []models.RecipeShort{}
	}
	for i := range sub.Recipes {
		h.presentShort(r, &sub.Recipes[i])
	}
	return sub
}
