// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db, zerolog.Nop())
}

func TestAddAssignsIDAndDate(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Add(context.Background(), Entry{Type: TypeFeedback, Name: "alice", Message: "Great picks"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.ID == "" {
		t.Error("expected assigned id")
	}
	if got.Date.IsZero() {
		t.Error("expected assigned date")
	}
}

func TestAddCoercesUnknownType(t *testing.T) {
	s := newTestStore(t)
	rating := 4.0

	got, err := s.Add(context.Background(), Entry{Type: "spam", Message: "hello", Rating: &rating})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.Type != TypeContact {
		t.Errorf("type = %q, want contact", got.Type)
	}
	if got.Rating != nil {
		t.Error("contact entries must not carry a rating")
	}
}

func TestAddRejectsEmptyMessage(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add(context.Background(), Entry{Type: TypeFeedback}); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("got %v, want ErrEmptyMessage", err)
	}
}

func TestListFeedbackFiltersAndSorts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, Entry{Type: TypeFeedback, Message: "first"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add(ctx, Entry{Type: TypeContact, Message: "a contact message"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.Add(ctx, Entry{Type: TypeFeedback, Message: "second"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := s.ListFeedback(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 feedback entries, got %d", len(got))
	}
	if got[0].Message != "second" || got[1].Message != "first" {
		t.Errorf("expected newest first, got %q then %q", got[0].Message, got[1].Message)
	}
	for _, e := range got {
		if e.Type != TypeFeedback {
			t.Errorf("contact entry leaked into feedback list: %+v", e)
		}
	}
}
