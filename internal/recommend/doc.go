// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package recommend implements the restaurant recommendation engine.
//
// The engine composes four signals over an in-memory catalog and a persistent
// rating store:
//
//   - Text similarity: TF-IDF vectors over cuisine+city text (textindex)
//   - Collaborative filtering: user-user cosine similarity over ratings (collab)
//   - Context scoring: weather/time/rating/votes heuristics (context.go)
//   - Explanations: human-readable justifications per result (explain.go)
//
// It answers four query types: filtered listing, trending, content-based
// ("more like this") and hybrid (content + collaborative fusion). The two
// derived structures, the similarity index and the user-restaurant matrix,
// are built lazily under a build lock and invalidated by data changes; query
// paths are pure reads and safe for concurrent use.
//
// Degraded mode: if the similarity index cannot be built the engine keeps
// serving, with content-based queries falling back to trending picks.
package recommend
