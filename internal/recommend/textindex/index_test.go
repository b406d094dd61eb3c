// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package textindex

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/models"
)

func testCatalog() []models.Restaurant {
	return []models.Restaurant{
		{Name: "Spice Villa", City: "Delhi", Cuisines: "North Indian, Mughlai"},
		{Name: "Curry House", City: "Delhi", Cuisines: "North Indian, Chinese"},
		{Name: "Tokyo Table", City: "Mumbai", Cuisines: "Japanese, Sushi"},
		{Name: "Sushi Go", City: "Mumbai", Cuisines: "Japanese, Sushi"},
		{Name: "Cafe Corner", City: "Pune", Cuisines: "Cafe, Coffee"},
	}
}

func newTestIndex(t *testing.T, docs []models.Restaurant) *Index {
	t.Helper()
	return New(docs, 20000, false, zerolog.Nop())
}

func TestSimilarExcludesSelf(t *testing.T) {
	ix := newTestIndex(t, testCatalog())

	for _, seed := range []string{"Spice Villa", "Tokyo Table"} {
		for _, m := range ix.Similar(seed, 10) {
			if m.Name == seed {
				t.Errorf("Similar(%q) returned the seed itself", seed)
			}
		}
	}
}

func TestSimilarRanksSharedTextFirst(t *testing.T) {
	ix := newTestIndex(t, testCatalog())

	got := ix.Similar("Tokyo Table", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Name != "Sushi Go" {
		t.Errorf("expected Sushi Go first, got %q (score %v)", got[0].Name, got[0].Score)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("expected strictly decreasing scores, got %v then %v", got[0].Score, got[1].Score)
	}
}

func TestSimilarityIsSymmetric(t *testing.T) {
	catalog := testCatalog()
	ix := newTestIndex(t, catalog)

	scoreOf := func(seed, other string) float64 {
		t.Helper()
		for _, m := range ix.Similar(seed, len(catalog)) {
			if m.Name == other {
				return m.Score
			}
		}
		t.Fatalf("Similar(%q) did not return %q", seed, other)
		return 0
	}

	const tolerance = 1e-12
	for i, a := range catalog {
		for _, b := range catalog[i+1:] {
			ab := scoreOf(a.Name, b.Name)
			ba := scoreOf(b.Name, a.Name)
			if diff := ab - ba; diff > tolerance || diff < -tolerance {
				t.Errorf("sim(%q,%q) = %v but sim(%q,%q) = %v", a.Name, b.Name, ab, b.Name, a.Name, ba)
			}
		}
	}
}

func TestSimilarLimitsToK(t *testing.T) {
	ix := newTestIndex(t, testCatalog())

	if got := ix.Similar("Spice Villa", 2); len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}
	if got := ix.Similar("Spice Villa", 100); len(got) != len(testCatalog())-1 {
		t.Errorf("expected %d results, got %d", len(testCatalog())-1, len(got))
	}
}

func TestSimilarUnknownName(t *testing.T) {
	ix := newTestIndex(t, testCatalog())
	if got := ix.Similar("Nonexistent", 5); got != nil {
		t.Errorf("expected nil for unknown name, got %v", got)
	}
}

func TestSimilarTiesKeepCatalogOrder(t *testing.T) {
	// Two identical candidates must come back in catalog order.
	docs := []models.Restaurant{
		{Name: "Seed", City: "Delhi", Cuisines: "Thai"},
		{Name: "Later Twin", City: "Delhi", Cuisines: "Thai"},
		{Name: "Also Twin", City: "Delhi", Cuisines: "Thai"},
	}
	// Swap so the later-named one appears first in the catalog.
	docs[1], docs[2] = docs[2], docs[1]

	ix := newTestIndex(t, docs)
	got := ix.Similar("Seed", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Name != docs[1].Name || got[1].Name != docs[2].Name {
		t.Errorf("tie-break order wrong: got %q, %q", got[0].Name, got[1].Name)
	}
}

func TestDisabledIndexReturnsEmpty(t *testing.T) {
	ix := New(testCatalog(), 20000, true, zerolog.Nop())
	if got := ix.Similar("Spice Villa", 5); got != nil {
		t.Errorf("expected nil from disabled index, got %v", got)
	}
	if status := ix.Status(); status != StatusDisabled {
		t.Errorf("expected disabled status, got %q", status)
	}
}

func TestEmptyCatalogDisablesIndex(t *testing.T) {
	ix := New(nil, 20000, false, zerolog.Nop())
	if got := ix.Similar("Anything", 5); got != nil {
		t.Errorf("expected nil from empty index, got %v", got)
	}
	if status := ix.Status(); status != StatusDisabled {
		t.Errorf("expected disabled status after empty build, got %q", status)
	}
}

func TestStatusTransitions(t *testing.T) {
	ix := newTestIndex(t, testCatalog())
	if status := ix.Status(); status != StatusPending {
		t.Fatalf("expected pending before first query, got %q", status)
	}
	ix.Similar("Spice Villa", 1)
	if status := ix.Status(); status != StatusReady {
		t.Fatalf("expected ready after first query, got %q", status)
	}
}

func TestVocabularyCap(t *testing.T) {
	// With a single-term vocabulary only the most frequent token survives;
	// documents sharing rarer tokens lose them and score zero together.
	docs := []models.Restaurant{
		{Name: "A", Cuisines: "pizza pizza pasta"},
		{Name: "B", Cuisines: "pizza salad"},
		{Name: "C", Cuisines: "pasta salad"},
	}
	ix := New(docs, 1, false, zerolog.Nop())

	got := ix.Similar("A", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	// "pizza" is the kept term: B shares it, C does not.
	if got[0].Name != "B" {
		t.Errorf("expected B first under capped vocabulary, got %q", got[0].Name)
	}
	if got[1].Score != 0 {
		t.Errorf("expected zero similarity for C, got %v", got[1].Score)
	}
}

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"North Indian and Chinese", []string{"north", "indian", "chinese"}},
		{"The Cafe", []string{"cafe"}},
		{"A B C", nil},
		{"Fast-Food, Street Food", []string{"fast", "food", "street", "food"}},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenizeKeepsAccentedTerms(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Café, Coffee", []string{"café", "coffee"}},
		{"São Paulo", []string{"são", "paulo"}},
		{"Pho Hà Nội", []string{"pho", "hà", "nội"}},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSimilarMatchesAccentedNames(t *testing.T) {
	ix := newTestIndex(t, []models.Restaurant{
		{Name: "Café Lumière", City: "São Paulo", Cuisines: "Café, French"},
		{Name: "Café Azul", City: "São Paulo", Cuisines: "Café, Brazilian"},
		{Name: "Sushi Go", City: "Mumbai", Cuisines: "Japanese, Sushi"},
	})

	got := ix.Similar("Café Lumière", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Name != "Café Azul" {
		t.Errorf("expected Café Azul first, got %q (score %v)", got[0].Name, got[0].Score)
	}
	if got[0].Score <= 0 {
		t.Errorf("expected positive similarity for shared accented terms, got %v", got[0].Score)
	}
}

func TestVectorsAreNormalized(t *testing.T) {
	ix := newTestIndex(t, testCatalog())
	ix.ensureBuilt()

	for i, vec := range ix.vectors {
		var norm float64
		for _, w := range vec.weights {
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		if norm < 0.999 || norm > 1.001 {
			t.Errorf("vector %d has squared norm %v, want 1", i, norm)
		}
	}
}
