// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package recommend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/metrics"
	"github.com/tomtom215/savora/internal/models"
	"github.com/tomtom215/savora/internal/recommend/collab"
	"github.com/tomtom215/savora/internal/recommend/textindex"
)

// Catalog is the read surface the engine needs from the restaurant catalog.
type Catalog interface {
	All() []models.Restaurant
	Get(name string) (models.Restaurant, bool)
	Len() int
}

// RatingStore combines the write path for new ratings with the read surface
// collaborative filtering consumes.
type RatingStore interface {
	AppendOrUpdate(ctx context.Context, r models.Rating) error
	collab.RatingSource
}

// Engine answers all recommendation queries. Queries are read-only over the
// catalog plus two lazily built derived structures and are safe for
// concurrent use.
type Engine struct {
	cfg     Config
	logger  zerolog.Logger
	catalog Catalog
	ratings RatingStore
	index   *textindex.Index
	collab  *collab.Filter
}

// New wires an engine over the catalog and rating store. The similarity
// index and rating matrix are not built here; each builds on first use.
func New(cfg Config, cat Catalog, ratings RatingStore, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		logger:  logger.With().Str("component", "engine").Logger(),
		catalog: cat,
		ratings: ratings,
		index:   textindex.New(cat.All(), cfg.MaxVocabulary, cfg.DisableTextIndex, logger),
		collab:  collab.New(ratings, cfg.Neighborhood, cfg.LikedThreshold, logger),
	}, nil
}

// IndexStatus reports the similarity index state for health checks.
func (e *Engine) IndexStatus() string {
	return e.index.Status()
}

// QueryFiltered applies search, city, cuisine and rating filters in catalog
// order, attaches listing explanations, sorts, and returns one fixed-size
// page. A preference profile switches the explanation style from the
// pipe-joined listing format to the sentence format with a severity class.
func (e *Engine) QueryFiltered(req FilterRequest) *FilteredResponse {
	start := time.Now()
	defer func() { metrics.RecordEngineQuery("filtered", time.Since(start)) }()

	search := strings.ToLower(strings.TrimSpace(req.Search))

	var filtered []Recommendation
	for _, r := range e.catalog.All() {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if len(req.Cities) > 0 && !containsFold(req.Cities, r.City) {
			continue
		}
		if len(req.Cuisines) > 0 && !anyCuisine(req.Cuisines, r) {
			continue
		}
		if req.MinRating > 0 && r.AggregateRating < req.MinRating {
			continue
		}
		rec := Recommendation{Restaurant: r}
		if req.Preferences != nil {
			expl := ExplainPreference(*req.Preferences, r)
			rec.Explanation = expl.Text
			rec.Class = expl.Class
		} else {
			rec.Explanation = explainListing(req.Context, r)
		}
		filtered = append(filtered, rec)
	}

	sortFiltered(filtered, req.Sort)

	total := len(filtered)
	pageSize := e.cfg.PageSize
	totalPages := (total + pageSize - 1) / pageSize
	page := req.Page
	if page < 1 {
		page = 1
	}

	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}

	return &FilteredResponse{
		Restaurants: filtered[lo:hi],
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// QueryTrending returns the top restaurants by rating then votes, reordered
// by context score when weather or time of day is supplied.
func (e *Engine) QueryTrending(qctx QueryContext) []Recommendation {
	start := time.Now()
	defer func() { metrics.RecordEngineQuery("trending", time.Since(start)) }()

	var trending []models.Restaurant
	for _, r := range e.catalog.All() {
		if r.AggregateRating > 0 {
			trending = append(trending, r)
		}
	}
	sortByRatingVotes(trending)

	if qctx.Weather != "" || qctx.TimeOfDay != "" {
		// Stable over the rating order, so equal context scores keep the
		// rating ranking.
		sort.SliceStable(trending, func(a, b int) bool {
			return contextScore(trending[a], qctx, e.cfg.Context) >
				contextScore(trending[b], qctx, e.cfg.Context)
		})
	}

	if len(trending) > e.cfg.TrendingLimit {
		trending = trending[:e.cfg.TrendingLimit]
	}
	out := make([]Recommendation, len(trending))
	for i, r := range trending {
		out[i] = Recommendation{Restaurant: r}
	}
	return out
}

// QueryContentBased returns restaurants most similar to the seed by cuisine
// and city text. When the index is disabled, still building, or the seed is
// unknown, it falls back to top-rated picks.
func (e *Engine) QueryContentBased(seedName string) []Recommendation {
	start := time.Now()
	defer func() { metrics.RecordEngineQuery("content", time.Since(start)) }()

	matches := e.index.Similar(seedName, e.cfg.ContentK)
	if len(matches) == 0 {
		metrics.EngineFallbacksTotal.WithLabelValues("content", "trending").Inc()
		e.logger.Debug().Str("seed", sanitize(seedName)).Msg("Content query falling back to trending")
		return e.trendingPicks(e.cfg.ContentK)
	}

	seed, _ := e.catalog.Get(seedName)
	out := make([]Recommendation, 0, len(matches))
	for _, m := range matches {
		r, ok := e.catalog.Get(m.Name)
		if !ok {
			continue
		}
		out = append(out, Recommendation{
			Restaurant:  r,
			Explanation: explainSimilar(seed, r),
		})
	}
	return out
}

// QueryHybrid fuses content-based and collaborative candidates, deduplicated
// by name with first occurrence winning. Collaborative filtering errors
// degrade to a content-only result; an empty fusion falls back to the head
// of the catalog.
func (e *Engine) QueryHybrid(ctx context.Context, seedName, user string) []Recommendation {
	start := time.Now()
	defer func() { metrics.RecordEngineQuery("hybrid", time.Since(start)) }()

	var candidates []Recommendation
	if seedName != "" {
		for _, m := range e.index.Similar(seedName, e.cfg.HybridContentK) {
			if r, ok := e.catalog.Get(m.Name); ok {
				candidates = append(candidates, Recommendation{Restaurant: r})
			}
		}
	}

	if user != "" {
		names, err := e.collab.Recommend(ctx, user, e.cfg.HybridCollabK)
		if err != nil {
			metrics.EngineFallbacksTotal.WithLabelValues("hybrid", "collab_error").Inc()
			e.logger.Warn().Err(err).Str("user", sanitize(user)).Msg("Collaborative filtering unavailable")
		}
		for _, name := range names {
			if r, ok := e.catalog.Get(name); ok {
				candidates = append(candidates, Recommendation{Restaurant: r})
			}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	combined := candidates[:0]
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		c.Explanation = explanationHybrid
		combined = append(combined, c)
	}

	if len(combined) == 0 {
		metrics.EngineFallbacksTotal.WithLabelValues("hybrid", "catalog").Inc()
		for _, r := range e.catalog.All() {
			combined = append(combined, Recommendation{Restaurant: r, Explanation: explanationHybrid})
			if len(combined) == e.cfg.HybridLimit {
				break
			}
		}
		return combined
	}

	if len(combined) > e.cfg.HybridLimit {
		combined = combined[:e.cfg.HybridLimit]
	}
	return combined
}

// RecordRating persists one rating. The rating matrix picks the write up on
// its next rebuild rather than immediately.
func (e *Engine) RecordRating(ctx context.Context, user, restaurant string, value float64) error {
	err := e.ratings.AppendOrUpdate(ctx, models.Rating{
		User:       user,
		Restaurant: restaurant,
		Rating:     value,
	})
	if err != nil {
		return err
	}
	e.logger.Info().
		Str("user", sanitize(user)).
		Str("restaurant", sanitize(restaurant)).
		Float64("rating", value).
		Msg("Rating recorded")
	return nil
}

// trendingPicks is the content-based fallback: top-k by rating then votes,
// labelled as trending.
func (e *Engine) trendingPicks(k int) []Recommendation {
	all := make([]models.Restaurant, len(e.catalog.All()))
	copy(all, e.catalog.All())
	sortByRatingVotes(all)
	if len(all) > k {
		all = all[:k]
	}
	out := make([]Recommendation, len(all))
	for i, r := range all {
		out[i] = Recommendation{Restaurant: r, Explanation: explanationTrending}
	}
	return out
}

func sortByRatingVotes(rs []models.Restaurant) {
	sort.SliceStable(rs, func(a, b int) bool {
		if rs[a].AggregateRating != rs[b].AggregateRating {
			return rs[a].AggregateRating > rs[b].AggregateRating
		}
		return rs[a].Votes > rs[b].Votes
	})
}

func sortFiltered(rs []Recommendation, key SortKey) {
	switch key {
	case SortRating:
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].AggregateRating > rs[b].AggregateRating
		})
	case SortVotes:
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].Votes > rs[b].Votes
		})
	case SortCostLow:
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].AverageCostForTwo < rs[b].AverageCostForTwo
		})
	case SortCostHigh:
		sort.SliceStable(rs, func(a, b int) bool {
			return rs[a].AverageCostForTwo > rs[b].AverageCostForTwo
		})
	}
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func anyCuisine(wanted []string, r models.Restaurant) bool {
	for _, w := range wanted {
		if r.HasCuisineTag(w) {
			return true
		}
	}
	return false
}

// sanitize strips control characters from user-supplied values before they
// reach the log stream.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
