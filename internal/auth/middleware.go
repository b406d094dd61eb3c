// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{}

var identityKey contextKey

// GuestUser is the identity used when no token is presented.
const GuestUser = "guest"

// Identity returns the authenticated username, or empty string for guests.
func Identity(ctx context.Context) string {
	if user, ok := ctx.Value(identityKey).(string); ok {
		return user
	}
	return ""
}

// IdentityOrGuest returns the authenticated username, or GuestUser.
func IdentityOrGuest(ctx context.Context) string {
	if user := Identity(ctx); user != "" {
		return user
	}
	return GuestUser
}

// Middleware resolves an optional bearer token. Requests without an
// Authorization header pass through as guests; requests presenting an
// invalid token are rejected so a client with a stale token fails loudly
// rather than silently downgrading to guest.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}
			user, err := m.Verify(strings.TrimSpace(token))
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, user)))
		})
	}
}
