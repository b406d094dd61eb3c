// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/savora/internal/auth"
	"github.com/tomtom215/savora/internal/recommend"
)

// Trending handles GET /api/v1/recommendations/trending. Optional weather
// and time parameters reorder the list by context score.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	results := h.engine.QueryTrending(recommend.QueryContext{
		Weather:   r.URL.Query().Get("weather"),
		TimeOfDay: r.URL.Query().Get("time"),
	})
	respondData(w, http.StatusOK, results, started)
}

// Similar handles GET /api/v1/recommendations/similar?name=X: restaurants
// with similar cuisine/city text, falling back to top-rated picks when the
// similarity index is unavailable or the name is unknown.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETER", "Query parameter 'name' is required", nil)
		return
	}
	respondData(w, http.StatusOK, h.engine.QueryContentBased(name), started)
}

// Hybrid handles GET /api/v1/recommendations/hybrid?name=X: fused content
// and collaborative candidates. The collaborative half activates only for
// authenticated requests.
func (h *Handler) Hybrid(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	name := r.URL.Query().Get("name")
	user := auth.Identity(r.Context())
	respondData(w, http.StatusOK, h.engine.QueryHybrid(r.Context(), name, user), started)
}
