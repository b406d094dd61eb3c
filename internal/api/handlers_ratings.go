// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/savora/internal/auth"
	"github.com/tomtom215/savora/internal/ratings"
)

// rateRequest is the POST /api/v1/ratings body. A zero rating is valid.
type rateRequest struct {
	Restaurant string  `json:"restaurant" validate:"required,max=200"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
}

// SaveRating handles POST /api/v1/ratings. One rating per (user,
// restaurant); rating the same restaurant again overwrites. Anonymous
// requests rate as the shared guest user.
func (h *Handler) SaveRating(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req rateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user := auth.IdentityOrGuest(r.Context())
	if _, ok := h.catalog.Get(req.Restaurant); !ok {
		respondError(w, http.StatusNotFound, "UNKNOWN_RESTAURANT", "No such restaurant in the catalog", nil)
		return
	}

	if err := h.engine.RecordRating(r.Context(), user, req.Restaurant, req.Rating); err != nil {
		if errors.Is(err, ratings.ErrInvalidRating) {
			respondError(w, http.StatusBadRequest, "INVALID_RATING", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to save rating", err)
		return
	}

	respondData(w, http.StatusCreated, map[string]string{"message": "rating saved"}, started)
}
