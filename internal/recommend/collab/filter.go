// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package collab implements user-user collaborative filtering over the
// rating store.
//
// A dense user-restaurant matrix (absent ratings as zero) is rebuilt lazily
// whenever the rating store's version advances, so readers between a rating
// write and the next query may briefly see stale neighborhoods. Rows and
// columns are ordered by user and restaurant name, which makes the matrix,
// and therefore tie-breaking, deterministic for a given set of ratings.
package collab

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/metrics"
	"github.com/tomtom215/savora/internal/models"
)

// RatingSource is the slice of the rating store the filter needs. Version
// must advance on every write so dirty matrices are detected.
type RatingSource interface {
	ListAll(ctx context.Context) ([]models.Rating, error)
	Version() int64
}

// Filter answers "what did users like me rate highly". Safe for concurrent
// use.
type Filter struct {
	source       RatingSource
	neighborhood int
	threshold    float64
	logger       zerolog.Logger

	mu           sync.RWMutex
	builtVersion int64
	users        []string
	userIdx      map[string]int
	restaurants  []string
	rows         [][]float64
}

// New creates a filter. neighborhood is the number of nearest users
// consulted; threshold is the minimum neighborhood mean rating for a
// restaurant to qualify.
func New(source RatingSource, neighborhood int, threshold float64, logger zerolog.Logger) *Filter {
	return &Filter{
		source:       source,
		neighborhood: neighborhood,
		threshold:    threshold,
		logger:       logger.With().Str("component", "collab").Logger(),
		builtVersion: -1,
	}
}

// Recommend returns up to k restaurant names the user's nearest neighbors
// rated at or above the threshold, best first. Unknown users and
// neighborhoods of fewer than two users yield an empty result, not an
// error.
func (f *Filter) Recommend(ctx context.Context, user string, k int) ([]string, error) {
	if user == "" || k <= 0 {
		return nil, nil
	}
	if err := f.ensureCurrent(ctx); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.users) < 2 {
		return nil, nil
	}
	idx, ok := f.userIdx[user]
	if !ok {
		return nil, nil
	}

	// Rank every other user by cosine similarity, ties by row order.
	type neighbor struct {
		row int
		sim float64
	}
	neighbors := make([]neighbor, 0, len(f.users)-1)
	for row := range f.rows {
		if row == idx {
			continue
		}
		neighbors = append(neighbors, neighbor{row: row, sim: cosine(f.rows[idx], f.rows[row])})
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].sim > neighbors[b].sim
	})
	if len(neighbors) > f.neighborhood {
		neighbors = neighbors[:f.neighborhood]
	}

	// Mean rating per restaurant over the actual ratings (non-zero cells)
	// of the neighborhood.
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, nb := range neighbors {
		for col, v := range f.rows[nb.row] {
			if v > 0 {
				sums[col] += v
				counts[col]++
			}
		}
	}

	type liked struct {
		col  int
		mean float64
	}
	qualified := make([]liked, 0, len(sums))
	for col, sum := range sums {
		mean := sum / float64(counts[col])
		if mean >= f.threshold {
			qualified = append(qualified, liked{col: col, mean: mean})
		}
	}
	sort.Slice(qualified, func(a, b int) bool {
		if qualified[a].mean != qualified[b].mean {
			return qualified[a].mean > qualified[b].mean
		}
		return qualified[a].col < qualified[b].col
	})
	if len(qualified) > k {
		qualified = qualified[:k]
	}

	out := make([]string, len(qualified))
	for i, q := range qualified {
		out[i] = f.restaurants[q.col]
	}
	return out, nil
}

// ensureCurrent rebuilds the matrix if the store has advanced.
func (f *Filter) ensureCurrent(ctx context.Context) error {
	version := f.source.Version()

	f.mu.RLock()
	current := f.builtVersion == version
	f.mu.RUnlock()
	if current {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.builtVersion == version {
		return nil
	}

	ratings, err := f.source.ListAll(ctx)
	if err != nil {
		return err
	}
	f.rebuild(ratings)
	f.builtVersion = version

	metrics.MatrixBuildsTotal.Inc()
	metrics.MatrixUsers.Set(float64(len(f.users)))
	f.logger.Debug().
		Int("users", len(f.users)).
		Int("restaurants", len(f.restaurants)).
		Int64("version", version).
		Msg("Rating matrix rebuilt")
	return nil
}

// rebuild constructs the dense matrix. Must hold the write lock.
func (f *Filter) rebuild(ratings []models.Rating) {
	userSet := make(map[string]struct{})
	restSet := make(map[string]struct{})
	for _, r := range ratings {
		userSet[r.User] = struct{}{}
		restSet[r.Restaurant] = struct{}{}
	}

	f.users = sortedKeys(userSet)
	f.restaurants = sortedKeys(restSet)
	f.userIdx = make(map[string]int, len(f.users))
	for i, u := range f.users {
		f.userIdx[u] = i
	}
	restIdx := make(map[string]int, len(f.restaurants))
	for i, r := range f.restaurants {
		restIdx[r] = i
	}

	f.rows = make([][]float64, len(f.users))
	for i := range f.rows {
		f.rows[i] = make([]float64, len(f.restaurants))
	}
	for _, r := range ratings {
		f.rows[f.userIdx[r.User]][restIdx[r.Restaurant]] = r.Rating
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
