// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"strings"

	"github.com/tomtom215/foodgram/internal/models"
)

// Request bodies and query parameters, validated with go-playground/validator
// tags plus the custom username, not_me and slug rules registered by the
// validation package. Field names in error details follow the json tags.

// UserCreateRequest is the body of POST /users/.
type UserCreateRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username,not_me"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,max=128"`
}

// SetPasswordRequest is the body of POST /users/set_password/.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=128"`
}

// TokenLoginRequest is the body of POST /auth/token/login/.
type TokenLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued token.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// TagCreateRequest is the body of POST /tags/. Color defaults to
// models.DefaultTagColor.
type TagCreateRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,hexcolor,len=7"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

func (req *TagCreateRequest) toModel() *models.Tag {
	color := strings.ToUpper(req.Color)
	if color == "" {
		color = models.DefaultTagColor
	}
	return &models.Tag{Name: strings.TrimSpace(req.Name), Color: color, Slug: req.Slug}
}

// IngredientCreateRequest is the body of POST /ingredients/.
type IngredientCreateRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// RecipeIngredientRequest is one ingredient line of a recipe body.
type RecipeIngredientRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int64 `json:"amount" validate:"gte=1,lte=32000"`
}

// RecipeRequest is the body of POST /recipes/ and PATCH /recipes/{id}/.
// Image is a base64 data URI; it is required on create and optional on
// update, where an empty value keeps the current image.
type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []int64                   `json:"tags" validate:"required,min=1,unique,dive,gt=0"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"gte=1,lte=32000"`
}

// toInput converts the body to the store's write model. image is the stored
// path of an already saved image, or "".
func (req *RecipeRequest) toInput(image string) *models.RecipeInput {
	lines := make([]models.IngredientAmount, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		lines[i] = models.IngredientAmount{IngredientID: ing.ID, Amount: ing.Amount}
	}
	return &models.RecipeInput{
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       image,
		TagIDs:      req.Tags,
		Ingredients: lines,
	}
}

// RecipeListRequest holds the GET /recipes/ filters.
type RecipeListRequest struct {
	Author           int64    `json:"author" validate:"gte=0"`
	Tags             []string `json:"tags" validate:"dive,max=200,slug"`
	IsFavorited      bool     `json:"is_favorited"`
	IsInShoppingCart bool     `json:"is_in_shopping_cart"`
}

// toFilter builds the store filter for viewerID. The favorite and cart
// filters only apply to authenticated viewers.
func (req *RecipeListRequest) toFilter(viewerID int64, p Page) *models.RecipeFilter {
	f := &models.RecipeFilter{
		AuthorID: req.Author,
		TagSlugs: req.Tags,
		ViewerID: viewerID,
		Limit:    p.Limit,
		Offset:   p.Offset(),
	}
	if viewerID > 0 {
		if req.IsFavorited {
			f.FavoritedBy = viewerID
		}
		if req.IsInShoppingCart {
			f.InCartOf = viewerID
		}
	}
	return f
}
