// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package textindex provides a TF-IDF similarity index over restaurant
// cuisine and city text.
//
// The index never materializes an N×N similarity matrix: it stores one
// L2-normalized sparse vector per restaurant and computes the cosine row for
// a single restaurant on demand. The vector matrix itself is built lazily on
// first query under a build lock, so startup cost is zero and concurrent
// first queries trigger exactly one build.
package textindex

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/metrics"
	"github.com/tomtom215/savora/internal/models"
)

// Status values reported for operational visibility.
const (
	StatusReady    = "ready"
	StatusPending  = "pending"
	StatusDisabled = "disabled"
)

// Match is one similarity result.
type Match struct {
	Name  string
	Score float64
}

// sparseVec is a term-id -> weight vector with ids sorted ascending, so two
// vectors dot in a single merge pass.
type sparseVec struct {
	terms   []int
	weights []float64
}

func (v sparseVec) dot(o sparseVec) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.terms) && j < len(o.terms) {
		switch {
		case v.terms[i] == o.terms[j]:
			sum += v.weights[i] * o.weights[j]
			i++
			j++
		case v.terms[i] < o.terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Index is a lazily built TF-IDF index. Safe for concurrent use.
type Index struct {
	maxVocab int
	disabled bool
	logger   zerolog.Logger

	docs []models.Restaurant

	mu      sync.RWMutex
	built   bool
	names   []string
	byName  map[string]int
	vectors []sparseVec
}

// New creates an index over the given catalog snapshot. Nothing is computed
// until the first Similar call. With disabled set, every query returns
// empty and callers are expected to fall back.
func New(docs []models.Restaurant, maxVocab int, disabled bool, logger zerolog.Logger) *Index {
	return &Index{
		maxVocab: maxVocab,
		disabled: disabled,
		logger:   logger.With().Str("component", "textindex").Logger(),
		docs:     docs,
	}
}

// Status reports the index lifecycle state for health reporting.
func (ix *Index) Status() string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	switch {
	case ix.disabled:
		return StatusDisabled
	case ix.built:
		return StatusReady
	default:
		return StatusPending
	}
}

// Similar returns up to k restaurants most similar to the named one,
// excluding the restaurant itself. Ties are broken by catalog order. It
// returns nil when the index is disabled or the name is unknown.
func (ix *Index) Similar(name string, k int) []Match {
	if k <= 0 {
		return nil
	}
	ix.ensureBuilt()

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.disabled || !ix.built {
		return nil
	}

	idx, ok := ix.byName[name]
	if !ok {
		return nil
	}

	seed := ix.vectors[idx]
	type scored struct {
		row   int
		score float64
	}
	candidates := make([]scored, 0, len(ix.vectors)-1)
	for row, vec := range ix.vectors {
		if row == idx {
			continue
		}
		candidates = append(candidates, scored{row: row, score: seed.dot(vec)})
	}

	// Stable: equal scores keep catalog order.
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]Match, len(candidates))
	for i, c := range candidates {
		out[i] = Match{Name: ix.names[c.row], Score: c.score}
	}
	return out
}

// ensureBuilt builds the vector matrix exactly once.
func (ix *Index) ensureBuilt() {
	ix.mu.RLock()
	done := ix.built || ix.disabled
	ix.mu.RUnlock()
	if done {
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.built || ix.disabled {
		return
	}
	if len(ix.docs) == 0 {
		ix.disabled = true
		metrics.IndexBuildsTotal.WithLabelValues("empty").Inc()
		ix.logger.Warn().Msg("Text index disabled: empty catalog")
		return
	}
	ix.build()
}

// build vectorizes every document. Must hold the write lock.
func (ix *Index) build() {
	tokenized := make([][]string, len(ix.docs))
	docFreq := make(map[string]int)
	termCount := make(map[string]int)
	for i, doc := range ix.docs {
		toks := tokenize(doc.Cuisines + " " + doc.City)
		tokenized[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			termCount[t]++
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	vocab := buildVocabulary(termCount, ix.maxVocab)

	n := float64(len(ix.docs))
	idf := make([]float64, len(vocab))
	for term, id := range vocab {
		idf[id] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	names := make([]string, len(ix.docs))
	byName := make(map[string]int, len(ix.docs))
	vectors := make([]sparseVec, len(ix.docs))
	for i, doc := range ix.docs {
		names[i] = doc.Name
		if _, dup := byName[doc.Name]; !dup {
			byName[doc.Name] = i
		}

		tf := make(map[int]float64)
		for _, t := range tokenized[i] {
			if id, ok := vocab[t]; ok {
				tf[id]++
			}
		}
		vectors[i] = normalize(tf, idf)
	}

	ix.names = names
	ix.byName = byName
	ix.vectors = vectors
	ix.built = true

	metrics.IndexBuildsTotal.WithLabelValues("success").Inc()
	metrics.IndexVocabularySize.Set(float64(len(vocab)))
	ix.logger.Info().
		Int("documents", len(ix.docs)).
		Int("vocabulary", len(vocab)).
		Msg("Text index built")
}

// buildVocabulary assigns term ids, keeping at most maxVocab terms by
// descending corpus frequency, ties alphabetical.
func buildVocabulary(termCount map[string]int, maxVocab int) map[string]int {
	terms := make([]string, 0, len(termCount))
	for t := range termCount {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(a, b int) bool {
		if termCount[terms[a]] != termCount[terms[b]] {
			return termCount[terms[a]] > termCount[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > maxVocab {
		terms = terms[:maxVocab]
	}

	vocab := make(map[string]int, len(terms))
	for id, t := range terms {
		vocab[t] = id
	}
	return vocab
}

// normalize applies idf weights and L2-normalizes into a sorted sparse
// vector.
func normalize(tf map[int]float64, idf []float64) sparseVec {
	ids := make([]int, 0, len(tf))
	for id := range tf {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	weights := make([]float64, len(ids))
	var norm float64
	for i, id := range ids {
		w := tf[id] * idf[id]
		weights[i] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range weights {
			weights[i] /= norm
		}
	}
	return sparseVec{terms: ids, weights: weights}
}

// tokenize lowercases and splits on non-alphanumeric runs, dropping
// single-character tokens and stop words. Letters and digits from any
// script count, so accented names like "Café" keep their terms.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if _, stop := englishStopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}
