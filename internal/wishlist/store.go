// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package wishlist persists per-user saved restaurants.
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "wishlist:"
	keySep    = "\x1f"
)

// ErrEmptyField is returned when user or restaurant is blank.
var ErrEmptyField = errors.New("user and restaurant must be non-empty")

// Entry is one saved restaurant.
type Entry struct {
	Restaurant string    `json:"restaurant"`
	AddedAt    time.Time `json:"added_at"`
}

// Store persists wishlists in Badger, one key per (user, restaurant). Safe
// for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

func New(db *badger.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger.With().Str("component", "wishlist").Logger()}
}

func key(user, restaurant string) []byte {
	return []byte(keyPrefix + user + keySep + restaurant)
}

// Add saves a restaurant to the user's wishlist. Re-adding is idempotent
// and keeps the original timestamp.
func (s *Store) Add(ctx context.Context, user, restaurant string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == "" || restaurant == "" {
		return ErrEmptyField
	}

	k := key(user, restaurant)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(k); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		data, err := json.Marshal(Entry{Restaurant: restaurant, AddedAt: time.Now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal entry: %w", err)
		}
		return txn.Set(k, data)
	})
}

// Remove deletes a restaurant from the user's wishlist. Removing an absent
// entry is not an error.
func (s *Store) Remove(ctx context.Context, user, restaurant string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == "" || restaurant == "" {
		return ErrEmptyField
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(user, restaurant))
	})
}

// List returns the user's saved restaurants in key order. Corrupt entries
// are skipped with a warning.
func (s *Store) List(ctx context.Context, user string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if user == "" {
		return nil, ErrEmptyField
	}

	prefix := []byte(keyPrefix + user + keySep)
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e Entry
				if err := json.Unmarshal(val, &e); err != nil {
					s.logger.Warn().Err(err).
						Str("key", string(it.Item().Key())).
						Msg("Skipping corrupt wishlist entry")
					return nil
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
