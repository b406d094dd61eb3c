// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package recommend

import (
	"strings"

	"github.com/tomtom215/savora/internal/models"
)

// SortKey selects the ordering of a filtered listing.
type SortKey string

const (
	SortNone     SortKey = ""
	SortRating   SortKey = "rating"
	SortVotes    SortKey = "votes"
	SortCostLow  SortKey = "cost_low"
	SortCostHigh SortKey = "cost_high"
)

// ParseSortKey maps a request parameter to a SortKey. Unrecognized values
// fall back to SortNone (catalog order) rather than erroring, matching the
// forgiving listing behaviour.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortRating:
		return SortRating
	case SortVotes:
		return SortVotes
	case SortCostLow:
		return SortCostLow
	case SortCostHigh:
		return SortCostHigh
	default:
		return SortNone
	}
}

// QueryContext carries the situational signals a client may attach to a
// query. All fields are optional free text; matching is case-insensitive.
type QueryContext struct {
	Weather   string `json:"weather,omitempty"`
	TimeOfDay string `json:"time_of_day,omitempty"`
	Mood      string `json:"mood,omitempty"`
	Budget    string `json:"budget,omitempty"`
	Group     string `json:"group,omitempty"`
}

// Empty reports whether no contextual signal was provided.
func (c QueryContext) Empty() bool {
	return c.Weather == "" && c.TimeOfDay == "" && c.Mood == "" && c.Budget == "" && c.Group == ""
}

// Preferences is a stored-preference profile used for the preference-match
// explanation style.
type Preferences struct {
	Cuisines []string `json:"cuisines,omitempty"`
	Budget   float64  `json:"budget,omitempty"`
	City     string   `json:"city,omitempty"`
}

// FilterRequest describes a filtered listing query.
type FilterRequest struct {
	Search    string       `json:"search,omitempty"`
	Cities    []string     `json:"cities,omitempty"`
	Cuisines  []string     `json:"cuisines,omitempty"`
	MinRating float64      `json:"min_rating,omitempty"`
	Sort      SortKey      `json:"sort,omitempty"`
	Page      int          `json:"page,omitempty"`
	Context   QueryContext `json:"context,omitempty"`

	// Preferences switches the per-item explanation from the listing style
	// to the sentence style built against the profile.
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Recommendation is a catalog entry decorated with an explanation. Class is
// set only on preference-explained listings.
type Recommendation struct {
	models.Restaurant
	Explanation string `json:"explanation,omitempty"`
	Class       string `json:"explain_class,omitempty"`
}

// Explanation is a preference-match justification with a severity class
// derived from the restaurant's rating.
type Explanation struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// FilteredResponse is one page of a filtered listing.
type FilteredResponse struct {
	Restaurants []Recommendation `json:"restaurants"`
	Total       int              `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int              `json:"total_pages"`
}
