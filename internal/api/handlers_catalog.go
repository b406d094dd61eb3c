// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/savora/internal/recommend"
)

// restaurantsRequest captures the filtered listing query parameters.
type restaurantsRequest struct {
	Search    string  `validate:"max=200"`
	MinRating float64 `validate:"gte=0,lte=5"`
	Page      int     `validate:"gte=0,lte=100000"`
}

// Restaurants handles GET /api/v1/restaurants: search, filter, sort and
// paginate the catalog, with per-item explanations driven by the query
// context.
func (h *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	q := r.URL.Query()

	req := restaurantsRequest{
		Search:    q.Get("search"),
		MinRating: getFloatParam(r, "rating", 0),
		Page:      getIntParam(r, "page", 1),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	filter := recommend.FilterRequest{
		Search:    req.Search,
		Cities:    parseCommaSeparated(q.Get("city")),
		Cuisines:  parseCommaSeparated(q.Get("cuisine")),
		MinRating: req.MinRating,
		Sort:      recommend.ParseSortKey(q.Get("sort")),
		Page:      req.Page,
		Context: recommend.QueryContext{
			Mood:      q.Get("mood"),
			TimeOfDay: q.Get("time"),
			Budget:    q.Get("budget"),
			Group:     q.Get("group"),
		},
	}

	// pref_* parameters select the sentence-style explanation built against
	// the caller's taste profile instead of the listing format.
	prefCuisines := parseCommaSeparated(q.Get("pref_cuisine"))
	prefBudget := getFloatParam(r, "pref_budget", 0)
	prefCity := q.Get("pref_city")
	if len(prefCuisines) > 0 || prefBudget > 0 || prefCity != "" {
		filter.Preferences = &recommend.Preferences{
			Cuisines: prefCuisines,
			Budget:   prefBudget,
			City:     prefCity,
		}
	}

	result := h.engine.QueryFiltered(filter)

	respondData(w, http.StatusOK, result, started)
}

// Filters handles GET /api/v1/filters: the distinct city and cuisine values
// available for filtering.
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	cities, cuisines := h.catalog.Filters()
	respondData(w, http.StatusOK, map[string]interface{}{
		"cities":   cities,
		"cuisines": cuisines,
	}, started)
}

// Insights handles GET /api/v1/insights: top cuisines, cities and rated
// restaurants for dashboard charts.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	n := getIntParam(r, "limit", 5)
	if n < 1 || n > 50 {
		n = 5
	}
	topCuisines, topCities, topRated := h.catalog.Insights(n)
	respondData(w, http.StatusOK, map[string]interface{}{
		"top_cuisines": topCuisines,
		"top_cities":   topCities,
		"top_rated":    topRated,
	}, started)
}
