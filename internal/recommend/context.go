// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package recommend

import (
	"strings"

	"github.com/tomtom215/savora/internal/models"
)

// Keyword sets matched against cuisine text per active condition. Matching
// is case-insensitive substring, so "Hot Snacks" matches "snack".
var (
	rainyKeywords   = []string{"soup", "tea", "hot snack", "snack", "pakora", "chai"}
	sunnyKeywords   = []string{"ice cream", "juice", "cold", "smoothie", "beverage"}
	morningKeywords = []string{"breakfast", "brunch", "pancake", "coffee"}
	eveningKeywords = []string{"dinner", "snack", "street food"}
)

// contextScore computes the additive context score for one restaurant.
// Each active condition contributes its boost at most once, however many of
// its keywords appear in the cuisine text.
func contextScore(r models.Restaurant, ctx QueryContext, w ContextWeights) float64 {
	cuisines := strings.ToLower(r.Cuisines)
	weather := strings.ToLower(ctx.Weather)
	tod := strings.ToLower(ctx.TimeOfDay)

	var score float64
	switch weather {
	case "rainy":
		if anyKeyword(cuisines, rainyKeywords) {
			score += w.RainyBoost
		}
	case "sunny":
		if anyKeyword(cuisines, sunnyKeywords) {
			score += w.SunnyBoost
		}
	}
	switch tod {
	case "morning":
		if anyKeyword(cuisines, morningKeywords) {
			score += w.MorningBoost
		}
	case "evening":
		if anyKeyword(cuisines, eveningKeywords) {
			score += w.EveningBoost
		}
	}

	score += r.AggregateRating * w.RatingWeight
	score += float64(r.Votes) / w.VotesDivisor
	return score
}

func anyKeyword(cuisines string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(cuisines, kw) {
			return true
		}
	}
	return false
}
