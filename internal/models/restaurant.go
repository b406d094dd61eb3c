// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package models

import (
	"strings"
)

// Restaurant is a catalog entry. The name is the primary key and is assumed
// unique within a catalog. Records are immutable after load; heterogeneous
// source fields are normalized once by the catalog loader, so every field
// here is already in canonical form.
type Restaurant struct {
	// Name is the restaurant name, the join key for ratings and wishlists.
	Name string `json:"name"`

	// City is the city the restaurant is located in.
	City string `json:"city"`

	// Cuisines is the comma-separated cuisine tag list, e.g. "North Indian, Chinese".
	// Matching against it is case-insensitive.
	Cuisines string `json:"cuisines"`

	// AggregateRating is the aggregate user rating in [0, 5].
	AggregateRating float64 `json:"aggregate_rating"`

	// Votes is the number of votes behind the aggregate rating.
	Votes int `json:"votes"`

	// AverageCostForTwo is the average cost for two people.
	AverageCostForTwo float64 `json:"average_cost_for_two"`

	// Contextual tags, free text, optional.
	Mood     string `json:"mood,omitempty"`
	MealTime string `json:"meal_time,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Group    string `json:"group,omitempty"`
}

// CuisineList splits the comma-separated cuisine field into trimmed tags.
// Empty tags are dropped.
func (r *Restaurant) CuisineList() []string {
	if r.Cuisines == "" {
		return nil
	}
	parts := strings.Split(r.Cuisines, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FirstCuisine returns the first cuisine tag, or "" if none.
func (r *Restaurant) FirstCuisine() string {
	tags := r.CuisineList()
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}

// HasCuisineTag reports whether the cuisine text contains tag,
// case-insensitive substring match.
func (r *Restaurant) HasCuisineTag(tag string) bool {
	if tag == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.Cuisines), strings.ToLower(tag))
}
