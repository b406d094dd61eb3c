// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"total": 45, "restaurants": [...]},
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
// Codes are stable identifiers (VALIDATION_ERROR, NOT_FOUND, ...) that
// clients can branch on; messages are for display only.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	CatalogLoaded  bool    `json:"catalog_loaded"`
	CatalogSize    int     `json:"catalog_size"`
	RatingsStore   bool    `json:"ratings_store_connected"`
	SimilarityMode string  `json:"similarity_index"` // "ready", "pending", "disabled"
	UptimeSeconds  float64 `json:"uptime_seconds"`
}
