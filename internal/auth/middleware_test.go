// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddlewareIdentity(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, _, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotIdentity string
	handler := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = Identity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"no header is guest", "", http.StatusOK, ""},
		{"valid token", "Bearer " + token, http.StatusOK, "alice"},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIdentity = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotIdentity != tt.wantUser {
				t.Errorf("identity = %q, want %q", gotIdentity, tt.wantUser)
			}
		})
	}
}

func TestIdentityOrGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := IdentityOrGuest(req.Context()); got != GuestUser {
		t.Errorf("IdentityOrGuest on bare context = %q, want %q", got, GuestUser)
	}
}
