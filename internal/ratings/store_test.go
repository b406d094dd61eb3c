// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package ratings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return New(db, zerolog.Nop())
}

func TestAppendOrUpdateOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AppendOrUpdate(ctx, models.Rating{User: "alice", Restaurant: "Spice Villa", Rating: 3}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := s.AppendOrUpdate(ctx, models.Rating{User: "alice", Restaurant: "Spice Villa", Rating: 5}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one record after overwrite, got %d", count)
	}

	got, found, err := s.Get(ctx, "alice", "Spice Villa")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Rating != 5 {
		t.Errorf("rating = %v, want latest value 5", got.Rating)
	}
}

func TestAppendOrUpdateValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		r       models.Rating
		wantErr error
	}{
		{"missing user", models.Rating{Restaurant: "X", Rating: 4}, nil},
		{"missing restaurant", models.Rating{User: "alice", Rating: 4}, nil},
		{"rating above range", models.Rating{User: "alice", Restaurant: "X", Rating: 5.1}, ErrInvalidRating},
		{"rating below range", models.Rating{User: "alice", Restaurant: "X", Rating: -1}, ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AppendOrUpdate(ctx, tt.r)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Boundary values are valid.
	for _, v := range []float64{0, 5} {
		if err := s.AppendOrUpdate(ctx, models.Rating{User: "bob", Restaurant: "Y", Rating: v}); err != nil {
			t.Errorf("rating %v should be valid: %v", v, err)
		}
	}
}

func TestAppendOrUpdateSetsDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	if err := s.AppendOrUpdate(ctx, models.Rating{User: "alice", Restaurant: "X", Rating: 4}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _, err := s.Get(ctx, "alice", "X")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date.Before(before) {
		t.Errorf("date not defaulted to now: %v", got.Date)
	}
}

func TestVersionAdvancesOnWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if v := s.Version(); v != 0 {
		t.Fatalf("initial version = %d, want 0", v)
	}
	_ = s.AppendOrUpdate(ctx, models.Rating{User: "alice", Restaurant: "X", Rating: 4})
	if v := s.Version(); v != 1 {
		t.Errorf("version after write = %d, want 1", v)
	}

	// Rejected writes must not advance the version.
	_ = s.AppendOrUpdate(ctx, models.Rating{User: "alice", Restaurant: "X", Rating: 9})
	if v := s.Version(); v != 1 {
		t.Errorf("version after rejected write = %d, want 1", v)
	}
}

func TestListAllDeterministicOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	writes := []models.Rating{
		{User: "carol", Restaurant: "Z", Rating: 4},
		{User: "alice", Restaurant: "B", Rating: 3},
		{User: "alice", Restaurant: "A", Rating: 5},
		{User: "bob", Restaurant: "A", Rating: 2},
	}
	for _, r := range writes {
		if err := s.AppendOrUpdate(ctx, r); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Key order: user, then restaurant.
	wantOrder := []string{"alice/A", "alice/B", "bob/A", "carol/Z"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d ratings, want %d", len(got), len(wantOrder))
	}
	for i, r := range got {
		if key := r.User + "/" + r.Restaurant; key != wantOrder[i] {
			t.Errorf("order[%d] = %q, want %q", i, key, wantOrder[i])
		}
	}
}

func TestImportJSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "ratings.json")
	content := `[
		{"user": "alice", "restaurant": "Spice Villa", "rating": 4.5, "date": "2026-01-15T10:00:00Z"},
		{"user": "bob", "restaurant": "Curry House", "rating": 3.0, "date": "2026-01-16T11:00:00Z"},
		{"user": "", "restaurant": "Invalid", "rating": 4.0, "date": "2026-01-17T12:00:00Z"},
		{"user": "alice", "restaurant": "Spice Villa", "rating": 5.0, "date": "2026-01-18T13:00:00Z"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	imported, err := s.ImportJSON(ctx, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	// Invalid entry skipped; duplicate pair counts as a second write.
	if imported != 3 {
		t.Errorf("imported = %d, want 3", imported)
	}

	count, _ := s.Count(ctx)
	if count != 2 {
		t.Errorf("stored records = %d, want 2", count)
	}

	got, _, _ := s.Get(ctx, "alice", "Spice Villa")
	if got.Rating != 5.0 {
		t.Errorf("later import entry should win: rating = %v", got.Rating)
	}
}

func TestImportJSONLegacyDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Timezone-less dates exactly as legacy ratings files write them.
	path := filepath.Join(t.TempDir(), "ratings.json")
	content := `[
		{"user": "alice", "restaurant": "Domino's Pizza", "rating": 4.5, "date": "2025-09-19T10:00:00"},
		{"user": "alice", "restaurant": "KFC", "rating": 4.0, "date": "2025-09-19T10:05:00"},
		{"user": "bob", "restaurant": "KFC", "rating": 5.0, "date": "2025-09-19T11:00:00"},
		{"user": "carol", "restaurant": "Pizza Hut", "rating": 4.6, "date": "2025-09-19T12:05:00"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	imported, err := s.ImportJSON(ctx, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 4 {
		t.Errorf("imported = %d, want 4", imported)
	}

	got, found, err := s.Get(ctx, "alice", "Domino's Pizza")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	want := time.Date(2025, 9, 19, 10, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("date = %v, want %v", got.Date, want)
	}
}

func TestImportJSONSkipsUnparseableDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "ratings.json")
	content := `[
		{"user": "alice", "restaurant": "Spice Villa", "rating": 4.5, "date": "19/09/2025"},
		{"user": "bob", "restaurant": "Curry House", "rating": 3.0, "date": "2026-01-16T11:00:00Z"},
		{"user": "carol", "restaurant": "Tokyo Table", "rating": 4.0, "date": ""}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	imported, err := s.ImportJSON(ctx, path)
	if err != nil {
		t.Fatalf("one bad date must not fail the import: %v", err)
	}
	if imported != 2 {
		t.Errorf("imported = %d, want 2", imported)
	}

	// Empty dates get stamped on write.
	got, found, _ := s.Get(ctx, "carol", "Tokyo Table")
	if !found || got.Date.IsZero() {
		t.Errorf("empty-date record should be stored with a stamped date, found=%v date=%v", found, got.Date)
	}
	if _, found, _ := s.Get(ctx, "alice", "Spice Villa"); found {
		t.Error("unparseable-date record should have been skipped")
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	s := newTestStore(t)
	n, err := s.ImportJSON(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if n != 0 {
		t.Errorf("imported = %d, want 0", n)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(sampleRatings) {
		t.Errorf("seeded = %d, want %d", n, len(sampleRatings))
	}

	// Second call is a no-op.
	n, err = s.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if n != 0 {
		t.Errorf("re-seed wrote %d records, want 0", n)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, found, err := s.Get(context.Background(), "nobody", "Nowhere")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
}
