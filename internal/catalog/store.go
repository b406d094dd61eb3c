// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package catalog provides the in-memory restaurant catalog.
//
// The catalog is loaded once at startup from a JSON snapshot and is read-only
// afterwards. Heterogeneous source records are normalized into typed entities
// at load time; malformed fields are replaced with zero values and counted,
// never propagated as errors (one bad record must not fail a listing).
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/metrics"
	"github.com/tomtom215/savora/internal/models"
)

// Store holds the immutable restaurant catalog. Safe for concurrent use:
// all fields are written once in Load and only read afterwards.
type Store struct {
	restaurants []models.Restaurant
	byName      map[string]int // name -> index in restaurants, catalog order
	anomalies   int
	logger      zerolog.Logger
}

// Load reads and normalizes the catalog snapshot at path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Load(path string, logger zerolog.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, logger)
}

// Parse builds a Store from raw catalog JSON. Exposed separately so tests
// and tooling can load catalogs from memory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Parse(data []byte, logger zerolog.Logger) (*Store, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	s := &Store{
		restaurants: make([]models.Restaurant, 0, len(raw)),
		byName:      make(map[string]int, len(raw)),
		logger:      logger.With().Str("component", "catalog").Logger(),
	}

	n := &normalizer{}
	for _, record := range raw {
		r, ok := n.normalize(record)
		if !ok {
			continue
		}
		if _, dup := s.byName[r.Name]; dup {
			// Names are the join key; keep the first occurrence.
			n.anomalies++
			continue
		}
		s.byName[r.Name] = len(s.restaurants)
		s.restaurants = append(s.restaurants, r)
	}
	s.anomalies = n.anomalies

	metrics.CatalogSize.Set(float64(len(s.restaurants)))
	if s.anomalies > 0 {
		metrics.CatalogAnomaliesTotal.Add(float64(s.anomalies))
	}

	s.logger.Info().
		Int("restaurants", len(s.restaurants)).
		Int("anomalies", s.anomalies).
		Msg("catalog loaded")

	return s, nil
}

// All returns every restaurant in catalog order. The returned slice is shared;
// callers must not mutate it.
func (s *Store) All() []models.Restaurant {
	return s.restaurants
}

// Get returns the restaurant with the given name.
func (s *Store) Get(name string) (models.Restaurant, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return models.Restaurant{}, false
	}
	return s.restaurants[idx], true
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.restaurants)
}

// Anomalies returns the count of malformed fields defaulted during load.
func (s *Store) Anomalies() int {
	return s.anomalies
}

// Filters returns the distinct cities and cuisine tags in the catalog,
// sorted ascending. Backs the filter dropdowns in the UI.
func (s *Store) Filters() (cities, cuisines []string) {
	citySet := make(map[string]struct{})
	cuisineSet := make(map[string]struct{})

	for i := range s.restaurants {
		r := &s.restaurants[i]
		if r.City != "" {
			citySet[r.City] = struct{}{}
		}
		for _, tag := range r.CuisineList() {
			cuisineSet[tag] = struct{}{}
		}
	}

	cities = make([]string, 0, len(citySet))
	for c := range citySet {
		cities = append(cities, c)
	}
	cuisines = make([]string, 0, len(cuisineSet))
	for c := range cuisineSet {
		cuisines = append(cuisines, c)
	}
	sort.Strings(cities)
	sort.Strings(cuisines)
	return cities, cuisines
}

// TagCount is a (label, count) pair for catalog insights.
type TagCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RatedName is a (name, rating) pair for catalog insights.
type RatedName struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Insights summarizes the catalog for dashboard charts: the top n cuisines
// and cities by frequency, and the top n restaurants by rating.
func (s *Store) Insights(n int) (topCuisines, topCities []TagCount, topRated []RatedName) {
	cuisineCounts := make(map[string]int)
	cityCounts := make(map[string]int)
	for i := range s.restaurants {
		r := &s.restaurants[i]
		for _, tag := range r.CuisineList() {
			cuisineCounts[tag]++
		}
		if city := strings.TrimSpace(r.City); city != "" {
			cityCounts[city]++
		}
	}

	topCuisines = topCounts(cuisineCounts, n)
	topCities = topCounts(cityCounts, n)

	rated := make([]models.Restaurant, len(s.restaurants))
	copy(rated, s.restaurants)
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].AggregateRating > rated[j].AggregateRating
	})
	if len(rated) > n {
		rated = rated[:n]
	}
	topRated = make([]RatedName, len(rated))
	for i, r := range rated {
		topRated[i] = RatedName{Name: r.Name, Rating: r.AggregateRating}
	}
	return topCuisines, topCities, topRated
}

// topCounts returns the n highest counts, ties broken by label for stability.
func topCounts(counts map[string]int, n int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, TagCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
