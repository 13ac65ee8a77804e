// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/middleware"
)

// slowRequest is the access log threshold for warn-level entries.
const slowRequest = 2 * time.Second

// Router wires the handler to routes and middleware.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware
}

// NewRouter creates the router. Authentication and authorization failures
// are rendered with the API error envelope.
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authn:         auth.NewMiddleware(handler.auth, writeError),
		authz:         authz.NewMiddleware(handler.enforcer, writeError),
	}
}

// SetupChi builds the HTTP handler.
//
// All API routes live under /api and accept a trailing slash. Every /api
// request passes the optional authenticator, so handlers see the caller
// when a valid token is sent; routes that need an account add Authenticate
// so bad tokens are reported as such. The Casbin policy then decides per
// route whether the caller's role may proceed.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(slowRequest))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chimiddleware.StripSlashes)

	h := router.handler
	allow := router.authz.Require
	authenticated := router.authn.Authenticate

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle(strings.TrimSuffix(h.media.Prefix(), "/")+"/*", h.media.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.Metrics)
		r.Use(chimiddleware.Compress(5, "application/json"))
		r.Use(router.authn.Optional)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).NotFound("Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
		})

		r.Route("/auth/token", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAuth())
			r.With(allow(authz.ObjSession, authz.ActWrite)).Post("/login", h.TokenLogin)
			r.With(authenticated, allow(authz.ObjSession, authz.ActDelete)).Post("/logout", h.TokenLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(allow(authz.ObjUsers, authz.ActRead)).Get("/", h.ListUsers)
			r.With(allow(authz.ObjUsers, authz.ActWrite)).Post("/", h.CreateUser)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.With(allow(authz.ObjAccount, authz.ActRead)).Get("/me", h.Me)
				r.With(allow(authz.ObjAccount, authz.ActWrite)).Post("/set_password", h.SetPassword)
				r.With(allow(authz.ObjSubscriptions, authz.ActRead)).Get("/subscriptions", h.ListSubscriptions)
				r.With(allow(authz.ObjSubscriptions, authz.ActWrite)).Post("/{id}/subscribe", h.Subscribe)
				r.With(allow(authz.ObjSubscriptions, authz.ActDelete)).Delete("/{id}/subscribe", h.Unsubscribe)
			})

			r.With(allow(authz.ObjUsers, authz.ActRead)).Get("/{id}", h.GetUser)
		})

		r.Route("/tags", func(r chi.Router) {
			r.With(allow(authz.ObjTags, authz.ActRead)).Get("/", h.ListTags)
			r.With(authenticated, allow(authz.ObjTags, authz.ActWrite)).Post("/", h.CreateTag)
			r.With(allow(authz.ObjTags, authz.ActRead)).Get("/{id}", h.GetTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.With(allow(authz.ObjIngredients, authz.ActRead)).Get("/", h.ListIngredients)
			r.With(authenticated, allow(authz.ObjIngredients, authz.ActWrite)).Post("/", h.CreateIngredient)
			r.With(allow(authz.ObjIngredients, authz.ActRead)).Get("/{id}", h.GetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.With(allow(authz.ObjRecipes, authz.ActRead)).Get("/", h.ListRecipes)
			r.With(authenticated, allow(authz.ObjRecipes, authz.ActWrite)).Post("/", h.CreateRecipe)
			r.With(
				authenticated,
				allow(authz.ObjShoppingList, authz.ActRead),
				router.chiMiddleware.RateLimitExport(),
			).Get("/download_shopping_cart", h.DownloadShoppingCart)

			r.Route("/{id}", func(r chi.Router) {
				r.With(allow(authz.ObjRecipes, authz.ActRead)).Get("/", h.GetRecipe)

				r.Group(func(r chi.Router) {
					r.Use(authenticated)
					r.With(allow(authz.ObjRecipes, authz.ActWrite)).Patch("/", h.UpdateRecipe)
					r.With(allow(authz.ObjRecipes, authz.ActDelete)).Delete("/", h.DeleteRecipe)
					r.With(allow(authz.ObjFavorites, authz.ActWrite)).Post("/favorite", h.AddFavorite)
					r.With(allow(authz.ObjFavorites, authz.ActDelete)).Delete("/favorite", h.RemoveFavorite)
					r.With(allow(authz.ObjShoppingCart, authz.ActWrite)).Post("/shopping_cart", h.AddToCart)
					r.With(allow(authz.ObjShoppingCart, authz.ActDelete)).Delete("/shopping_cart", h.RemoveFromCart)
				})
			})
		})
	})

	return r
}
