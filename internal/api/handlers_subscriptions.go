// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"

	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/models"
)

// recipesLimit reads recipes_limit. Zero, negative or missing means all
// recipes of each author.
func recipesLimit(r *http.Request) int {
	n := getIntParam(r, "recipes_limit", 0)
	if n < 0 {
		return 0
	}
	return n
}

// ListSubscriptions handles GET /api/users/subscriptions/.
//
// @Summary List followed authors
// @Tags Users
// @Produce json
// @Security TokenAuth
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Param recipes_limit query int false "Recipes shown per author, all when missing"
// @Success 200 {object} APIResponse{data=[]models.Subscription} "Subscriptions with pagination"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Router /api/users/subscriptions/ [get]
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	page := h.pageFromRequest(r)
	subs, total, err := h.store.ListSubscriptions(r.Context(), subject.UserID, recipesLimit(r), page.Limit, page.Offset())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	for i := range subs {
		h.presentSubscription(r, &subs[i])
	}
	NewResponseWriter(w, r).SuccessWithPagination(subs, NewPaginationMeta(page, len(subs), total))
}

// Subscribe handles POST /api/users/{id}/subscribe/.
//
// @Summary Follow an author
// @Tags Users
// @Produce json
// @Security TokenAuth
// @Param id path int true "Author user ID"
// @Param recipes_limit query int false "Recipes shown, all when missing"
// @Success 201 {object} APIResponse{data=models.Subscription} "Subscribed"
// @Failure 400 {object} APIResponse "Already subscribed or self subscription"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "User not found"
// @Router /api/users/{id}/subscribe/ [post]
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	authorID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := h.store.Subscribe(r.Context(), subject.UserID, authorID, recipesLimit(r))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.emit(r.Context(), events.SubscriptionCreated, subject.UserID, authorID)
	NewResponseWriter(w, r).Created(h.presentSubscription(r, sub))
}

// Unsubscribe handles DELETE /api/users/{id}/subscribe/.
//
// @Summary Unfollow an author
// @Tags Users
// @Security TokenAuth
// @Param id path int true "Author user ID"
// @Success 204 "Unsubscribed"
// @Failure 400 {object} APIResponse "Not subscribed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "User not found"
// @Router /api/users/{id}/subscribe/ [delete]
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	authorID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.store.Unsubscribe(r.Context(), subject.UserID, authorID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.emit(r.Context(), events.SubscriptionDeleted, subject.UserID, authorID)
	NewResponseWriter(w, r).NoContent()
}
