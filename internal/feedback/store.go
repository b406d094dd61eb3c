// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package feedback persists contact and feedback submissions.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const keyPrefix = "feedback:"

// Entry types.
const (
	TypeContact  = "contact"
	TypeFeedback = "feedback"
)

// ErrEmptyMessage is returned for submissions with no message body.
var ErrEmptyMessage = errors.New("message must be non-empty")

// Entry is one submission. Rating is set only for feedback-type entries.
type Entry struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Message string   `json:"message"`
	Rating  *float64 `json:"rating,omitempty"`

	Date time.Time `json:"date"`
}

// Store persists submissions in Badger. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

func New(db *badger.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger.With().Str("component", "feedback").Logger()}
}

// Add stores a submission, assigning its id and timestamp. Unknown types
// are coerced to contact, and ratings are only kept on feedback entries.
func (s *Store) Add(ctx context.Context, e Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if e.Message == "" {
		return Entry{}, ErrEmptyMessage
	}
	if e.Type != TypeFeedback {
		e.Type = TypeContact
		e.Rating = nil
	}
	e.ID = uuid.NewString()
	e.Date = time.Now().UTC()

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal feedback: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+e.ID), data)
	})
	if err != nil {
		return Entry{}, err
	}

	s.logger.Info().Str("type", e.Type).Str("id", e.ID).Msg("Feedback stored")
	return e, nil
}

// ListFeedback returns feedback-type entries, newest first. Contact entries
// are excluded, matching the public feedback wall. Corrupt records are
// skipped with a warning.
func (s *Store) ListFeedback(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e Entry
				if err := json.Unmarshal(val, &e); err != nil {
					s.logger.Warn().Err(err).
						Str("key", string(it.Item().Key())).
						Msg("Skipping corrupt feedback entry")
					return nil
				}
				if e.Type == TypeFeedback {
					entries = append(entries, e)
				}
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

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Date.After(entries[b].Date)
	})
	return entries, nil
}
