// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/savora/internal/models"
)

// Health handles GET /api/v1/health with full component status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	_, ratingsErr := h.ratings.Count(r.Context())

	status := models.HealthStatus{
		Status:         "healthy",
		Version:        h.version,
		CatalogLoaded:  h.catalog.Len() > 0,
		CatalogSize:    h.catalog.Len(),
		RatingsStore:   ratingsErr == nil,
		SimilarityMode: h.engine.IndexStatus(),
		UptimeSeconds:  time.Since(h.started).Seconds(),
	}
	if !status.CatalogLoaded || !status.RatingsStore {
		status.Status = "degraded"
	}

	respondData(w, http.StatusOK, status, started)
}

// HealthLive handles GET /api/v1/health/live: process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"alive"}`))
}

// HealthReady handles GET /api/v1/health/ready: ready once the catalog is
// loaded and the rating store answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.catalog.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Catalog not loaded", nil)
		return
	}
	if _, err := h.ratings.Count(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Rating store unavailable", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
