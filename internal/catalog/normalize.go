// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package catalog

import (
	"strconv"
	"strings"

	"github.com/tomtom215/savora/internal/models"
)

// Source catalogs come from scraped datasets with inconsistent field naming
// ("Restaurant Name" vs "name", "Aggregate rating" vs "rating") and stringly
// typed numerics. Normalization happens exactly once at load; downstream code
// only ever sees the typed models.Restaurant.

// fieldAliases lists accepted source keys per canonical field, in priority order.
var fieldAliases = map[string][]string{
	"name":     {"Restaurant Name", "Restaurant_name", "name"},
	"city":     {"City", "city"},
	"cuisines": {"Cuisines", "cuisine", "cuisines"},
	"rating":   {"Aggregate rating", "aggregate_rating", "rating"},
	"votes":    {"Votes", "votes"},
	"cost":     {"Average Cost for two", "Cost for two", "average_cost_for_two", "cost"},
	"mood":     {"Mood", "mood"},
	"time":     {"Time", "time", "meal_time"},
	"budget":   {"Budget", "budget"},
	"group":    {"Group", "group"},
}

// normalizer converts raw records to typed restaurants, counting every field
// it had to default instead of parse.
type normalizer struct {
	anomalies int
}

// normalize converts one raw record. Returns false when the record has no
// usable name and must be skipped entirely.
func (n *normalizer) normalize(raw map[string]interface{}) (models.Restaurant, bool) {
	name := strings.TrimSpace(n.stringField(raw, "name"))
	if name == "" {
		n.anomalies++
		return models.Restaurant{}, false
	}

	return models.Restaurant{
		Name:              name,
		City:              strings.TrimSpace(n.stringField(raw, "city")),
		Cuisines:          strings.TrimSpace(n.stringField(raw, "cuisines")),
		AggregateRating:   n.floatField(raw, "rating"),
		Votes:             n.intField(raw, "votes"),
		AverageCostForTwo: n.floatField(raw, "cost"),
		Mood:              strings.TrimSpace(n.stringField(raw, "mood")),
		MealTime:          strings.TrimSpace(n.stringField(raw, "time")),
		Budget:            strings.TrimSpace(n.stringField(raw, "budget")),
		Group:             strings.TrimSpace(n.stringField(raw, "group")),
	}, true
}

// lookup returns the first present alias value for the canonical field.
func lookup(raw map[string]interface{}, field string) (interface{}, bool) {
	for _, key := range fieldAliases[field] {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (n *normalizer) stringField(raw map[string]interface{}, field string) string {
	v, ok := lookup(raw, field)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		n.anomalies++
		return ""
	}
}

func (n *normalizer) floatField(raw map[string]interface{}, field string) float64 {
	v, ok := lookup(raw, field)
	if !ok {
		return 0
	}
	switch f := v.(type) {
	case float64:
		return f
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			n.anomalies++
			return 0
		}
		return parsed
	default:
		n.anomalies++
		return 0
	}
}

func (n *normalizer) intField(raw map[string]interface{}, field string) int {
	// Vote counts show up as "523", 523 and 523.0 in source data.
	return int(n.floatField(raw, field))
}
