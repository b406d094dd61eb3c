// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package users provides account storage with bcrypt password hashing.
package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const keyPrefix = "user:"

var (
	// ErrUserExists is returned when signing up an already-taken username.
	ErrUserExists = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown users and wrong passwords,
	// so callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidUsername is returned for usernames outside the allowed
	// charset or length.
	ErrInvalidUsername = errors.New("username must be 3-32 characters of letters, digits, '_', '.' or '-'")

	// ErrWeakPassword is returned for passwords below the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

// User is a stored account. The password hash never leaves this package.
type User struct {
	Name      string    `json:"name"`
	Hash      []byte    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists accounts in Badger. Safe for concurrent use.
type Store struct {
	db         *badger.DB
	bcryptCost int
	logger     zerolog.Logger
}

// New creates a user store. cost is the bcrypt work factor.
func New(db *badger.DB, cost int, logger zerolog.Logger) *Store {
	return &Store{
		db:         db,
		bcryptCost: cost,
		logger:     logger.With().Str("component", "users").Logger(),
	}
}

// Create registers a new account, hashing the password with bcrypt.
func (s *Store) Create(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := User{Name: username, Hash: hash, CreatedAt: time.Now().UTC()}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	key := []byte(keyPrefix + username)
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("user", username).Msg("Account created")
	return nil
}

// Authenticate verifies a username/password pair. A bcrypt comparison runs
// even for unknown users to keep timing uniform.
func (s *Store) Authenticate(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	user, found, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if !found {
		// Burn a comparison against a dummy hash.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(user.Hash, []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Get fetches one account by username.
func (s *Store) Get(ctx context.Context, username string) (User, bool, error) {
	if err := ctx.Err(); err != nil {
		return User{}, false, err
	}

	var user User
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &user); err != nil {
				return fmt.Errorf("unmarshal user: %w", err)
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return User{}, false, err
	}
	return user, found, nil
}

// dummyHash is a bcrypt hash of an unguessable placeholder, used to equalize
// response time for unknown usernames.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("savora-timing-placeholder"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}()
