// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package metrics provides Prometheus instrumentation for:
//   - API endpoint latency and throughput
//   - Recommendation engine queries by type
//   - Similarity index and collaborative matrix builds
//   - Rating writes and catalog data quality
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "savora_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// Recommendation Engine Metrics
	EngineQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_engine_queries_total",
			Help: "Total number of recommendation engine queries",
		},
		[]string{"query_type"}, // "filtered", "trending", "content", "hybrid"
	)

	EngineQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "savora_engine_query_duration_seconds",
			Help:    "Duration of recommendation engine queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"query_type"},
	)

	EngineFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_engine_fallbacks_total",
			Help: "Total number of degraded-mode fallbacks taken by the engine",
		},
		[]string{"query_type", "fallback"}, // e.g. "content"/"trending", "hybrid"/"catalog_order"
	)

	// Similarity Index Metrics
	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_index_builds_total",
			Help: "Total number of similarity index build attempts",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	IndexVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "savora_index_vocabulary_terms",
			Help: "Number of terms in the TF-IDF vocabulary",
		},
	)

	// Collaborative Filter Metrics
	MatrixBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "savora_collab_matrix_builds_total",
			Help: "Total number of user-restaurant matrix rebuilds",
		},
	)

	MatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "savora_collab_matrix_users",
			Help: "Number of user rows in the last built rating matrix",
		},
	)

	// Rating Store Metrics
	RatingWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_rating_writes_total",
			Help: "Total number of rating writes",
		},
		[]string{"kind"}, // "insert", "update"
	)

	// Catalog Metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "savora_catalog_restaurants",
			Help: "Number of restaurants in the loaded catalog",
		},
	)

	CatalogAnomaliesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "savora_catalog_anomalies_total",
			Help: "Number of malformed catalog fields replaced with defaults at load",
		},
	)
)

// RecordAPIRequest records an API request with its duration.
func RecordAPIRequest(endpoint, method string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// RecordEngineQuery records an engine query with its duration.
func RecordEngineQuery(queryType string, duration time.Duration) {
	EngineQueriesTotal.WithLabelValues(queryType).Inc()
	EngineQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}
