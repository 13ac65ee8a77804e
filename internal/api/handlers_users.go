// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// ListUsers handles GET /api/users/.
//
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Success 200 {object} APIResponse{data=[]models.User} "Users with pagination"
// @Router /api/users/ [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := h.pageFromRequest(r)
	users, total, err := h.store.ListUsers(r.Context(), auth.ViewerID(r.Context()), page.Limit, page.Offset())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessWithPagination(users, NewPaginationMeta(page, len(users), total))
}

// CreateUser handles POST /api/users/ (registration).
//
// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body UserCreateRequest true "Account"
// @Success 201 {object} APIResponse{data=models.User} "User registered"
// @Failure 400 {object} APIResponse "Validation failed or duplicate email/username"
// @Router /api/users/ [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if problems := h.passwords.Check(req.Password, req.Username, req.Email); len(problems) > 0 {
		NewResponseWriter(w, r).ValidationError(strings.Join(problems, "; "), map[string][]string{"password": problems})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), &models.NewUser{
		Email:        strings.TrimSpace(req.Email),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	h.emit(r.Context(), events.UserRegistered, user.ID, user.ID)
	NewResponseWriter(w, r).Created(user)
}

// GetUser handles GET /api/users/{id}/.
//
// @Summary Get a user profile
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} APIResponse{data=models.User} "User"
// @Failure 404 {object} APIResponse "User not found"
// @Router /api/users/{id}/ [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.store.GetUser(r.Context(), id, auth.ViewerID(r.Context()))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// Me handles GET /api/users/me/.
//
// @Summary Get the current user
// @Tags Users
// @Produce json
// @Security TokenAuth
// @Success 200 {object} APIResponse{data=models.User} "Current user"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Router /api/users/me/ [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	user, err := h.store.GetUser(r.Context(), subject.UserID, subject.UserID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// SetPassword handles POST /api/users/set_password/.
//
// @Summary Change the password
// @Tags Users
// @Accept json
// @Security TokenAuth
// @Param body body SetPasswordRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 400 {object} APIResponse "Wrong current password or invalid new one"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Router /api/users/set_password/ [post]
func (h *Handler) SetPassword(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	var req SetPasswordRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	hash, err := h.store.GetPasswordHash(ctx, subject.UserID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if err := auth.CheckPassword(hash, req.CurrentPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			err = validation.NewFieldError("current_password", "password", "current_password is incorrect")
		}
		writeError(w, r, err)
		return
	}

	user, err := h.store.GetUser(ctx, subject.UserID, subject.UserID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if problems := h.passwords.Check(req.NewPassword, user.Username, user.Email); len(problems) > 0 {
		NewResponseWriter(w, r).ValidationError(strings.Join(problems, "; "), map[string][]string{"new_password": problems})
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.store.SetPassword(ctx, subject.UserID, newHash); err != nil {
		writeStoreError(w, r, err)
		return
	}

	logging.Ctx(ctx).Info().Int64("user_id", subject.UserID).Msg("Password changed")
	NewResponseWriter(w, r).NoContent()
}
