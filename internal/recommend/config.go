// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package recommend

import "fmt"

// Config holds engine tuning parameters. Zero values are invalid; start from
// DefaultConfig and override.
type Config struct {
	// PageSize is the fixed page size for filtered listings.
	PageSize int

	// TrendingLimit caps trending query results.
	TrendingLimit int

	// ContentK is the neighbour count for standalone content-based queries.
	ContentK int

	// HybridContentK and HybridCollabK size the two candidate pools fused
	// by hybrid queries; HybridLimit caps the fused result.
	HybridContentK int
	HybridCollabK  int
	HybridLimit    int

	// MaxVocabulary bounds the TF-IDF vocabulary; DisableTextIndex forces
	// the engine into degraded mode without building the index.
	MaxVocabulary    int
	DisableTextIndex bool

	// Neighborhood is the number of nearest users consulted by
	// collaborative filtering; LikedThreshold is the minimum mean rating
	// for a restaurant to be recommended from the neighborhood.
	Neighborhood   int
	LikedThreshold float64

	// Context holds the additive context-scoring weights.
	Context ContextWeights
}

// ContextWeights tunes the context scorer. Boosts apply when the restaurant's
// cuisine text matches the keyword set for the active condition; the base
// score is always rating*RatingWeight + votes/VotesDivisor.
type ContextWeights struct {
	RainyBoost   float64
	SunnyBoost   float64
	MorningBoost float64
	EveningBoost float64
	RatingWeight float64
	VotesDivisor float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PageSize:       20,
		TrendingLimit:  10,
		ContentK:       5,
		HybridContentK: 6,
		HybridCollabK:  6,
		HybridLimit:    10,
		MaxVocabulary:  20000,
		Neighborhood:   3,
		LikedThreshold: 4.0,
		Context: ContextWeights{
			RainyBoost:   30,
			SunnyBoost:   20,
			MorningBoost: 40,
			EveningBoost: 25,
			RatingWeight: 2,
			VotesDivisor: 100,
		},
	}
}

// Validate checks the configuration for values that would break query
// invariants.
func (c Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be at least 1, got %d", c.PageSize)
	}
	if c.TrendingLimit < 1 {
		return fmt.Errorf("trending limit must be at least 1, got %d", c.TrendingLimit)
	}
	if c.MaxVocabulary < 1 {
		return fmt.Errorf("max vocabulary must be at least 1, got %d", c.MaxVocabulary)
	}
	if c.Neighborhood < 1 {
		return fmt.Errorf("neighborhood must be at least 1, got %d", c.Neighborhood)
	}
	if c.LikedThreshold < 0 || c.LikedThreshold > 5 {
		return fmt.Errorf("liked threshold must be in [0,5], got %g", c.LikedThreshold)
	}
	if c.Context.VotesDivisor == 0 {
		return fmt.Errorf("votes divisor must be non-zero")
	}
	return nil
}
