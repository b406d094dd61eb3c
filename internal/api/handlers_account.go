// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package api

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/savora/internal/auth"
	"github.com/tomtom215/savora/internal/feedback"
	"github.com/tomtom215/savora/internal/users"
	"github.com/tomtom215/savora/internal/wishlist"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=128"`
}

// Signup handles POST /api/v1/auth/signup: create an account and return a
// token.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	err := h.users.Create(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, users.ErrUserExists):
		respondError(w, http.StatusConflict, "USER_EXISTS", err.Error(), nil)
		return
	case errors.Is(err, users.ErrInvalidUsername), errors.Is(err, users.ErrWeakPassword):
		respondError(w, http.StatusBadRequest, "INVALID_CREDENTIALS_FORMAT", err.Error(), nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create account", err)
		return
	}

	h.issueToken(w, req.Username, http.StatusCreated, started)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to verify credentials", err)
		return
	}

	h.issueToken(w, req.Username, http.StatusOK, started)
}

func (h *Handler) issueToken(w http.ResponseWriter, username string, status int, started time.Time) {
	token, expires, err := h.tokens.Issue(username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err)
		return
	}
	respondData(w, status, map[string]interface{}{
		"username":   username,
		"token":      token,
		"expires_at": expires,
	}, started)
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	username := auth.Identity(r.Context())
	if username == "" {
		respondError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required", nil)
		return
	}

	user, found, err := h.users.Get(r.Context(), username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load account", err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "Account no longer exists", nil)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"username":   user.Name,
		"created_at": user.CreatedAt,
	}, started)
}

// WishlistGet handles GET /api/v1/wishlist for the requesting identity.
func (h *Handler) WishlistGet(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	entries, err := h.wishlist.List(r.Context(), auth.IdentityOrGuest(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load wishlist", err)
		return
	}
	if entries == nil {
		entries = []wishlist.Entry{}
	}
	respondData(w, http.StatusOK, entries, started)
}

type wishlistRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// WishlistAdd handles POST /api/v1/wishlist.
func (h *Handler) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req wishlistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if _, ok := h.catalog.Get(req.Name); !ok {
		respondError(w, http.StatusNotFound, "UNKNOWN_RESTAURANT", "No such restaurant in the catalog", nil)
		return
	}

	if err := h.wishlist.Add(r.Context(), auth.IdentityOrGuest(r.Context()), req.Name); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to update wishlist", err)
		return
	}
	respondData(w, http.StatusCreated, map[string]string{"message": "Added to wishlist"}, started)
}

// WishlistRemove handles DELETE /api/v1/wishlist/{name}. Removing an absent
// entry succeeds.
func (h *Handler) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETER", "Restaurant name is required", nil)
		return
	}

	if err := h.wishlist.Remove(r.Context(), auth.IdentityOrGuest(r.Context()), name); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to update wishlist", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"}, started)
}

type feedbackRequest struct {
	Type    string   `json:"type" validate:"omitempty,oneof=contact feedback"`
	Name    string   `json:"name" validate:"max=100"`
	Email   string   `json:"email" validate:"omitempty,email"`
	Message string   `json:"message" validate:"required,max=4000"`
	Rating  *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// FeedbackPost handles POST /api/v1/feedback: contact messages and feedback
// submissions share one endpoint, distinguished by type.
func (h *Handler) FeedbackPost(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req feedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	entry, err := h.feedback.Add(r.Context(), feedback.Entry{
		Type:    req.Type,
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store feedback", err)
		return
	}
	respondData(w, http.StatusCreated, entry, started)
}

// FeedbackGet handles GET /api/v1/feedback: feedback-type submissions,
// newest first.
func (h *Handler) FeedbackGet(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	entries, err := h.feedback.ListFeedback(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load feedback", err)
		return
	}
	if entries == nil {
		entries = []feedback.Entry{}
	}
	respondData(w, http.StatusOK, entries, started)
}
