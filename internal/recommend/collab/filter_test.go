// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package collab

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/models"
)

// fakeSource is an in-memory RatingSource.
type fakeSource struct {
	ratings []models.Rating
	version int64
	listErr error
}

func (f *fakeSource) ListAll(_ context.Context) ([]models.Rating, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ratings, nil
}

func (f *fakeSource) Version() int64 { return f.version }

func (f *fakeSource) add(user, restaurant string, rating float64) {
	f.ratings = append(f.ratings, models.Rating{User: user, Restaurant: restaurant, Rating: rating})
	f.version++
}

func newTestFilter(source RatingSource) *Filter {
	return New(source, 3, 4.0, zerolog.Nop())
}

func TestRecommendFewerThanTwoUsers(t *testing.T) {
	src := &fakeSource{}
	src.add("alice", "Spice Villa", 5)

	got, err := newTestFilter(src).Recommend(context.Background(), "alice", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result with a single user, got %v", got)
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	src := &fakeSource{}
	src.add("alice", "Spice Villa", 5)
	src.add("bob", "Curry House", 4)

	got, err := newTestFilter(src).Recommend(context.Background(), "mallory", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result for unknown user, got %v", got)
	}
}

func TestRecommendFromNeighborhood(t *testing.T) {
	src := &fakeSource{}
	// alice and bob rate alike; bob additionally loves Tokyo Table and
	// dislikes Dive Bar. carol is dissimilar.
	src.add("alice", "Spice Villa", 5)
	src.add("alice", "Curry House", 4)
	src.add("bob", "Spice Villa", 5)
	src.add("bob", "Curry House", 4)
	src.add("bob", "Tokyo Table", 5)
	src.add("bob", "Dive Bar", 2)
	src.add("carol", "Cafe Corner", 3)

	got, err := newTestFilter(src).Recommend(context.Background(), "alice", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"Spice Villa": true, "Curry House": true, "Tokyo Table": true}
	for _, name := range got {
		if name == "Dive Bar" {
			t.Errorf("Dive Bar (mean 2.0) should not pass the 4.0 threshold")
		}
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("missing expected recommendations: %v (got %v)", want, got)
	}
}

func TestRecommendOrderedByMeanDescending(t *testing.T) {
	src := &fakeSource{}
	src.add("alice", "Common", 5)
	src.add("bob", "Common", 5)
	src.add("bob", "Great Place", 5)
	src.add("bob", "Good Place", 4)

	got, err := newTestFilter(src).Recommend(context.Background(), "alice", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("expected at least 2 recommendations, got %v", got)
	}
	// Common and Great Place tie at 5.0 ahead of Good Place at 4.0.
	if got[len(got)-1] != "Good Place" {
		t.Errorf("expected Good Place last, got %v", got)
	}
}

func TestRecommendLimitsToK(t *testing.T) {
	src := &fakeSource{}
	src.add("alice", "Common", 5)
	src.add("bob", "Common", 5)
	for _, name := range []string{"R1", "R2", "R3", "R4", "R5"} {
		src.add("bob", name, 5)
	}

	got, err := newTestFilter(src).Recommend(context.Background(), "alice", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 recommendations, got %d: %v", len(got), got)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	src := &fakeSource{}
	src.add("alice", "Common", 5)
	src.add("bob", "Common", 5)
	src.add("bob", "Alpha", 5)
	src.add("bob", "Beta", 5)
	src.add("bob", "Gamma", 5)

	f := newTestFilter(src)
	first, err := f.Recommend(context.Background(), "alice", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := f.Recommend(context.Background(), "alice", 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("result length changed between runs: %v vs %v", first, again)
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("result order changed between runs: %v vs %v", first, again)
			}
		}
	}
}

func TestRebuildOnVersionChange(t *testing.T) {
	src := &fakeSource{}
	src.add("alice", "Common", 5)
	src.add("bob", "Common", 5)

	f := newTestFilter(src)
	got, err := f.Recommend(context.Background(), "alice", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "Common" {
		t.Fatalf("unexpected initial result: %v", got)
	}

	src.add("bob", "New Spot", 5)
	got, err = f.Recommend(context.Background(), "alice", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, name := range got {
		if name == "New Spot" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected New Spot after version bump, got %v", got)
	}
}

func TestRecommendPropagatesListError(t *testing.T) {
	src := &fakeSource{listErr: errors.New("store offline")}
	src.version = 1

	if _, err := newTestFilter(src).Recommend(context.Background(), "alice", 6); err == nil {
		t.Fatal("expected error when the rating source fails")
	}
}
