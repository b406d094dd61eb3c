// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package ratings

import (
	"context"
	"time"

	"github.com/tomtom215/savora/internal/models"
)

// sampleRatings is a small demo rating set with enough user overlap for the
// collaborative filter to produce recommendations out of the box.
var sampleRatings = []models.Rating{
	{User: "alice", Restaurant: "Domino's Pizza", Rating: 4.5},
	{User: "alice", Restaurant: "KFC", Rating: 4.0},
	{User: "alice", Restaurant: "Burger King", Rating: 3.5},
	{User: "bob", Restaurant: "KFC", Rating: 5.0},
	{User: "bob", Restaurant: "McDonald's", Rating: 4.2},
	{User: "bob", Restaurant: "Subway", Rating: 3.8},
	{User: "carol", Restaurant: "Domino's Pizza", Rating: 4.8},
	{User: "carol", Restaurant: "Pizza Hut", Rating: 4.6},
	{User: "carol", Restaurant: "Subway", Rating: 4.1},
	{User: "david", Restaurant: "Burger King", Rating: 4.0},
	{User: "david", Restaurant: "McDonald's", Rating: 4.3},
	{User: "david", Restaurant: "Pizza Hut", Rating: 3.9},
}

// SeedIfEmpty writes the sample ratings when the store holds none.
// Returns the number of seeded records (0 when the store already has data).
func (s *Store) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	n := 0
	for i, r := range sampleRatings {
		r.Date = now.Add(time.Duration(i) * time.Minute)
		if err := s.AppendOrUpdate(ctx, r); err != nil {
			return n, err
		}
		n++
	}

	s.logger.Info().Int("seeded", n).Msg("seeded sample ratings")
	return n, nil
}
