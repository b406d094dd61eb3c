// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package ratings provides the persistent rating store, backed by BadgerDB.
//
// There is one logical rating per (user, restaurant) pair: writing a rating
// for an existing pair overwrites the stored value and timestamp, no history
// is retained. Writes are serialized; reads see the store as of the last
// completed write. Each successful write bumps a version counter that the
// collaborative filter uses to invalidate its cached matrix.
package ratings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/metrics"
	"github.com/tomtom215/savora/internal/models"
)

// keyPrefix namespaces rating entries within the shared BadgerDB.
const keyPrefix = "rating:"

// keySep separates user from restaurant in composite keys. An ASCII unit
// separator cannot appear in validated usernames and is vanishingly unlikely
// in restaurant names.
const keySep = "\x1f"

// ErrInvalidRating indicates a rating value outside the [0, 5] domain.
var ErrInvalidRating = errors.New("rating value must be in [0, 5]")

// Store is a BadgerDB-backed rating store. Safe for concurrent use.
type Store struct {
	db      *badger.DB
	writeMu sync.Mutex
	version atomic.Int64
	logger  zerolog.Logger
}

// New creates a rating store on top of an open BadgerDB handle.
// The handle is shared with other stores and owned by the caller.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(db *badger.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "ratings").Logger(),
	}
}

// key builds the composite BadgerDB key for a (user, restaurant) pair.
func key(user, restaurant string) []byte {
	return []byte(keyPrefix + user + keySep + restaurant)
}

// AppendOrUpdate stores a rating, overwriting any previous rating by the same
// user for the same restaurant. The rating's Date is set to now if zero.
func (s *Store) AppendOrUpdate(ctx context.Context, r models.Rating) error {
	if r.User == "" || r.Restaurant == "" {
		return fmt.Errorf("rating requires user and restaurant")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	kind := "insert"
	err = s.db.Update(func(txn *badger.Txn) error {
		k := key(r.User, r.Restaurant)
		if _, getErr := txn.Get(k); getErr == nil {
			kind = "update"
		} else if !errors.Is(getErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("get rating: %w", getErr)
		}
		return txn.Set(k, data)
	})
	if err != nil {
		return fmt.Errorf("store rating: %w", err)
	}

	s.version.Add(1)
	metrics.RatingWritesTotal.WithLabelValues(kind).Inc()

	s.logger.Debug().
		Str("user", r.User).
		Str("restaurant", r.Restaurant).
		Float64("rating", r.Rating).
		Str("kind", kind).
		Msg("rating stored")

	return nil
}

// Get returns the rating a user gave a restaurant, if any.
func (s *Store) Get(ctx context.Context, user, restaurant string) (models.Rating, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Rating{}, false, err
	}

	var r models.Rating
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(user, restaurant))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Rating{}, false, nil
	}
	if err != nil {
		return models.Rating{}, false, fmt.Errorf("get rating: %w", err)
	}
	return r, true, nil
}

// ListAll returns every stored rating. Order is key order (user, then
// restaurant), which is deterministic across calls.
func (s *Store) ListAll(ctx context.Context) ([]models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []models.Rating
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var r models.Rating
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				// One corrupt record must not fail the whole listing.
				s.logger.Warn().Err(err).Msg("skipping unreadable rating record")
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return out, nil
}

// Count returns the number of stored ratings.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}

// Version returns the write version. It increases on every successful write,
// so consumers can cheaply detect staleness of derived structures.
func (s *Store) Version() int64 {
	return s.version.Load()
}

// importRecord mirrors the legacy at-rest shape with the date kept as a
// string, because legacy files write timezone-less ISO-8601 dates that
// time.Time refuses to unmarshal.
type importRecord struct {
	User       string  `json:"user"`
	Restaurant string  `json:"restaurant"`
	Rating     float64 `json:"rating"`
	Date       string  `json:"date"`
}

// legacyDateLayout is the timezone-less format legacy ratings files use.
const legacyDateLayout = "2006-01-02T15:04:05"

// parseImportDate accepts RFC3339 or the legacy timezone-less format. An
// empty date is fine; AppendOrUpdate stamps it.
func parseImportDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(legacyDateLayout, s)
}

// ImportJSON loads ratings from a legacy ratings.json file
// ([{user, restaurant, rating, date}]) into the store. Later entries for the
// same (user, restaurant) pair overwrite earlier ones, matching the
// append-or-update write semantics. Records with unusable dates or values
// are skipped, not fatal. Missing file is not an error.
func (s *Store) ImportJSON(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read ratings file %s: %w", path, err)
	}

	var imported []importRecord
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("decode ratings file %s: %w", path, err)
	}

	n := 0
	for _, rec := range imported {
		date, err := parseImportDate(rec.Date)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("user", rec.User).
				Str("restaurant", rec.Restaurant).
				Msg("skipping imported rating with unparseable date")
			continue
		}
		r := models.Rating{
			User:       rec.User,
			Restaurant: rec.Restaurant,
			Rating:     rec.Rating,
			Date:       date,
		}
		if err := s.AppendOrUpdate(ctx, r); err != nil {
			s.logger.Warn().Err(err).
				Str("user", r.User).
				Str("restaurant", r.Restaurant).
				Msg("skipping invalid imported rating")
			continue
		}
		n++
	}

	s.logger.Info().Int("imported", n).Str("path", path).Msg("ratings imported")
	return n, nil
}
