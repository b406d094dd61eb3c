// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/savora/internal/auth"
)

// Router assembles the HTTP handler tree.
type Router struct {
	handler *Handler
	tokens  *auth.Manager
}

// NewRouter creates a router over the handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler, tokens: handler.tokens}
}

// Setup configures all routes.
func (router *Router) Setup() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.API.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints: permissive rate limit for monitoring.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// Auth endpoints: strict rate limit against brute force.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(h.cfg.API.AuthRateLimitReqs, time.Minute))
		r.Use(PrometheusMetrics())
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.With(auth.Middleware(router.tokens)).Get("/me", h.Me)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(h.cfg.API.RateLimitReqs, h.cfg.API.RateLimitWindow))
		r.Use(PrometheusMetrics())
		r.Use(auth.Middleware(router.tokens))

		r.Get("/restaurants", h.Restaurants)
		r.Get("/filters", h.Filters)
		r.Get("/insights", h.Insights)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/trending", h.Trending)
			r.Get("/similar", h.Similar)
			r.Get("/hybrid", h.Hybrid)
		})

		writeThrottle := WriteThrottle(h.cfg.API.RatingWritesPerSecond, h.cfg.API.RatingWriteBurst)
		r.With(writeThrottle).Post("/ratings", h.SaveRating)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.WishlistGet)
			r.Post("/", h.WishlistAdd)
			r.Delete("/{name}", h.WishlistRemove)
		})

		r.Get("/feedback", h.FeedbackGet)
		r.Post("/feedback", h.FeedbackPost)
	})

	// Prometheus scrape endpoint, outside the API rate limits.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
