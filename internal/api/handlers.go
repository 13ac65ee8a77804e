// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"context"
	"time"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/shopping"
)

// Store is the persistence surface the handlers use. *database.DB
// implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, in *models.NewUser) (*models.User, error)
	GetUser(ctx context.Context, id, viewerID int64) (*models.User, error)
	ListUsers(ctx context.Context, viewerID int64, limit, offset int) ([]models.User, int64, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	SetPassword(ctx context.Context, id int64, hash string) error

	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id int64) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error)
	CreateIngredient(ctx context.Context, in *models.Ingredient) (*models.Ingredient, error)

	ListRecipes(ctx context.Context, f *models.RecipeFilter) ([]models.Recipe, int64, error)
	GetRecipe(ctx context.Context, id, viewerID int64) (*models.Recipe, error)
	RecipeAuthorID(ctx context.Context, id int64) (int64, error)
	CreateRecipe(ctx context.Context, authorID int64, in *models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id, viewerID int64, in *models.RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) (string, error)

	AddFavorite(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error)
	RemoveFavorite(ctx context.Context, userID, recipeID int64) error
	AddToCart(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error)
	RemoveFromCart(ctx context.Context, userID, recipeID int64) error

	Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	ListSubscriptions(ctx context.Context, userID int64, recipesLimit, limit, offset int) ([]models.Subscription, int64, error)
}

// HandlerDeps bundles what NewHandler needs. Events may be nil.
type HandlerDeps struct {
	Store    Store
	Auth     *auth.Service
	Enforcer *authz.Enforcer
	Media    *media.Store
	Exporter *shopping.Exporter
	Events   events.Emitter
	Config   *config.Config
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by resource:
//   - handlers_users.go: registration, profiles, set_password
//   - handlers_auth.go: token login and logout
//   - handlers_catalog.go: tags and ingredients
//   - handlers_recipes.go: recipe CRUD
//   - handlers_relations.go: favorites, shopping cart and its download
//   - handlers_subscriptions.go: following authors
//   - handlers_health.go: liveness and readiness
type Handler struct {
	store     Store
	auth      *auth.Service
	enforcer  *authz.Enforcer
	media     *media.Store
	exporter  *shopping.Exporter
	events    events.Emitter
	config    *config.Config
	passwords auth.PasswordPolicy
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(deps HandlerDeps) *Handler {
	emitter := deps.Events
	if emitter == nil {
		emitter = events.Discard{}
	}
	return &Handler{
		store:     deps.Store,
		auth:      deps.Auth,
		enforcer:  deps.Enforcer,
		media:     deps.Media,
		exporter:  deps.Exporter,
		events:    emitter,
		config:    deps.Config,
		passwords: auth.DefaultPasswordPolicy(),
		startTime: time.Now(),
	}
}

// emit publishes an activity for a successful write.
func (h *Handler) emit(ctx context.Context, t events.Type, userID, targetID int64) {
	h.events.Emit(ctx, events.NewActivity(t, userID, targetID))
}
