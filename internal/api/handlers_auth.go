// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
)

// TokenLogin handles POST /api/auth/token/login/.
//
// @Summary Obtain an auth token
// @Description Exchanges email and password for a token. Repeated failures from one address are throttled.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body TokenLoginRequest true "Credentials"
// @Success 200 {object} APIResponse{data=TokenResponse} "Token issued"
// @Failure 400 {object} APIResponse "Invalid credentials or body"
// @Failure 429 {object} APIResponse "Too many login attempts"
// @Router /api/auth/token/login/ [post]
func (h *Handler) TokenLogin(w http.ResponseWriter, r *http.Request) {
	var req TokenLoginRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, _, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(TokenResponse{AuthToken: token})
}

// TokenLogout handles POST /api/auth/token/logout/. The token stays revoked
// until it would have expired.
//
// @Summary Revoke the current token
// @Tags Auth
// @Security TokenAuth
// @Success 204 "Token revoked"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Router /api/auth/token/logout/ [post]
func (h *Handler) TokenLogout(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	if err := h.auth.Logout(r.Context(), subject); err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
