// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/savora/internal/models"
)

// Severity classes for preference-match explanations.
const (
	ClassHigh    = "why-high"
	ClassMedium  = "why-medium"
	ClassLow     = "why-low"
	ClassNeutral = "why-neutral"
)

const (
	explanationTrending = "Trending pick ⭐"
	explanationHybrid   = "Hybrid recommendation"
)

// ExplainPreference builds a sentence-style justification against a stored
// preference profile, with a severity class keyed off the rating.
func ExplainPreference(prefs Preferences, r models.Restaurant) Explanation {
	var reasons []string
	class := ClassNeutral

	cuisines := strings.ToLower(r.Cuisines)
	for _, c := range prefs.Cuisines {
		if c != "" && strings.Contains(cuisines, strings.ToLower(c)) {
			reasons = append(reasons, fmt.Sprintf("because you like %s cuisine", c))
		}
	}

	switch {
	case r.AggregateRating >= 4.5:
		reasons = append(reasons, fmt.Sprintf("it has a high rating of %g★", r.AggregateRating))
		class = ClassHigh
	case r.AggregateRating >= 3.5:
		reasons = append(reasons, fmt.Sprintf("it has a decent rating of %g★", r.AggregateRating))
		class = ClassMedium
	default:
		reasons = append(reasons, fmt.Sprintf("rating is %g★", r.AggregateRating))
		class = ClassLow
	}

	if prefs.Budget > 0 && r.AverageCostForTwo > 0 && r.AverageCostForTwo <= prefs.Budget {
		reasons = append(reasons, fmt.Sprintf("fits your budget under ₹%g", prefs.Budget))
	}

	if prefs.City != "" && strings.EqualFold(strings.TrimSpace(r.City), strings.TrimSpace(prefs.City)) {
		reasons = append(reasons, fmt.Sprintf("it's located in your city (%s)", r.City))
	}

	if len(reasons) == 0 {
		reasons = []string{"matches your preferences"}
		class = ClassNeutral
	}

	return Explanation{Text: "Recommended " + strings.Join(reasons, ", "), Class: class}
}

// explainListing builds the pipe-separated reason string for filtered
// listings. Context fields match as case-insensitive substrings of the
// restaurant's tag fields.
func explainListing(ctx QueryContext, r models.Restaurant) string {
	var reasons []string

	if tagMatches(ctx.Mood, r.Mood) {
		reasons = append(reasons, "Mood="+titleCase(ctx.Mood))
	}
	if tagMatches(ctx.TimeOfDay, r.MealTime) {
		reasons = append(reasons, "Time="+titleCase(ctx.TimeOfDay))
	}
	if tagMatches(ctx.Budget, r.Budget) {
		reasons = append(reasons, "Budget="+titleCase(ctx.Budget))
	}
	if tagMatches(ctx.Group, r.Group) {
		reasons = append(reasons, "Group="+ctx.Group)
	}

	if r.AggregateRating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("Highly rated ⭐ %g", r.AggregateRating))
	} else if r.AggregateRating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("Good rating ⭐ %g", r.AggregateRating))
	}

	if r.Votes >= 500 {
		reasons = append(reasons, fmt.Sprintf("Popular (votes: %d)", r.Votes))
	} else if r.Votes >= 200 {
		reasons = append(reasons, fmt.Sprintf("Well-reviewed (votes: %d)", r.Votes))
	}

	if fc := r.FirstCuisine(); fc != "" {
		reasons = append(reasons, "Cuisine: "+fc)
	}
	if r.City != "" {
		reasons = append(reasons, "City: "+r.City)
	}

	if len(reasons) == 0 {
		reasons = []string{"General match"}
	}
	return strings.Join(reasons, " | ")
}

// explainSimilar builds the reason string for a content-based result
// relative to the seed restaurant.
func explainSimilar(seed, r models.Restaurant) string {
	var reasons []string

	if fc := r.FirstCuisine(); fc != "" && seed.Cuisines != "" &&
		strings.Contains(strings.ToLower(seed.Cuisines), strings.ToLower(fc)) {
		reasons = append(reasons, fmt.Sprintf("Similar cuisine 🍽 (%s)", r.Cuisines))
	}
	if r.City != "" && strings.EqualFold(r.City, seed.City) {
		reasons = append(reasons, fmt.Sprintf("Same city 🏙 (%s)", r.City))
	}

	if r.AggregateRating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("Highly rated ⭐ %g", r.AggregateRating))
	} else if r.AggregateRating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("Good rating ⭐ %g", r.AggregateRating))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Similar restaurant by overall profile")
	}
	return strings.Join(reasons, " | ")
}

// tagMatches reports whether the requested value appears in the restaurant's
// tag field, case-insensitively. An empty request value never matches.
func tagMatches(want, have string) bool {
	if want == "" {
		return false
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
