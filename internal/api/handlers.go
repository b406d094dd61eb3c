// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package api provides the HTTP surface for the recommendation service.
package api

import (
	"time"

	"github.com/tomtom215/savora/internal/auth"
	"github.com/tomtom215/savora/internal/catalog"
	"github.com/tomtom215/savora/internal/config"
	"github.com/tomtom215/savora/internal/feedback"
	"github.com/tomtom215/savora/internal/ratings"
	"github.com/tomtom215/savora/internal/recommend"
	"github.com/tomtom215/savora/internal/users"
	"github.com/tomtom215/savora/internal/wishlist"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	cfg      *config.Config
	catalog  *catalog.Store
	engine   *recommend.Engine
	ratings  *ratings.Store
	users    *users.Store
	wishlist *wishlist.Store
	feedback *feedback.Store
	tokens   *auth.Manager

	version string
	started time.Time
}

// HandlerDeps bundles constructor arguments for NewHandler.
type HandlerDeps struct {
	Config   *config.Config
	Catalog  *catalog.Store
	Engine   *recommend.Engine
	Ratings  *ratings.Store
	Users    *users.Store
	Wishlist *wishlist.Store
	Feedback *feedback.Store
	Tokens   *auth.Manager
	Version  string
}

// NewHandler creates the handler set.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		cfg:      deps.Config,
		catalog:  deps.Catalog,
		engine:   deps.Engine,
		ratings:  deps.Ratings,
		users:    deps.Users,
		wishlist: deps.Wishlist,
		feedback: deps.Feedback,
		tokens:   deps.Tokens,
		version:  deps.Version,
		started:  time.Now(),
	}
}
