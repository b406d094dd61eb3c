// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Package config provides layered configuration loading via Koanf v2.
//
// Configuration sources, highest priority wins:
//  1. Environment variables (SAVORA_ prefix, e.g. SAVORA_SERVER_PORT)
//  2. Config file (config.yaml, or CONFIG_PATH override)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Savora server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Logging   LoggingConfig   `koanf:"logging"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataConfig contains data file and store locations.
type DataConfig struct {
	// CatalogPath is the restaurant catalog JSON snapshot, loaded once at startup.
	CatalogPath string `koanf:"catalog_path"`

	// RatingsImportPath is an optional legacy ratings.json to import into the
	// rating store when the store is empty. Shape: [{user, restaurant, rating, date}].
	RatingsImportPath string `koanf:"ratings_import_path"`

	// BadgerDir is the BadgerDB directory for ratings, wishlist, users and feedback.
	BadgerDir string `koanf:"badger_dir"`

	// BadgerInMemory runs BadgerDB without disk persistence. Used in tests
	// and throwaway deployments.
	BadgerInMemory bool `koanf:"badger_in_memory"`

	// SeedSampleRatings seeds a small demo rating set when the store is empty,
	// so collaborative filtering has something to chew on out of the box.
	SeedSampleRatings bool `koanf:"seed_sample_ratings"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig contains API behavior settings.
type APIConfig struct {
	// PageSize is the fixed page size for the filtered restaurant listing.
	PageSize int `koanf:"page_size"`

	// RateLimitReqs / RateLimitWindow bound general API traffic per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// AuthRateLimitReqs bounds signup/login attempts per window (brute force).
	AuthRateLimitReqs int `koanf:"auth_rate_limit_requests"`

	// RatingWritesPerSecond / RatingWriteBurst bound rating submissions.
	RatingWritesPerSecond float64 `koanf:"rating_writes_per_second"`
	RatingWriteBurst      int     `koanf:"rating_write_burst"`

	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// SecurityConfig contains authentication settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Must be at least 32 bytes when auth
	// endpoints are used.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// BcryptCost is the bcrypt cost factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`
}

// RecommendConfig contains recommendation engine knobs. Defaults reproduce the
// hand-tuned behavior of the reference dataset; see internal/recommend.
type RecommendConfig struct {
	// MaxVocabulary caps the TF-IDF vocabulary size.
	MaxVocabulary int `koanf:"max_vocabulary"`

	// DisableTextIndex forces the similarity index into disabled mode
	// (tight-memory deployments). Content-based queries fall back to trending.
	DisableTextIndex bool `koanf:"disable_text_index"`

	// Neighborhood is the number of similar users consulted by the
	// collaborative filter.
	Neighborhood int `koanf:"neighborhood"`

	// LikedThreshold is the minimum mean neighbor rating for a restaurant to
	// count as "liked".
	LikedThreshold float64 `koanf:"liked_threshold"`

	// Context scoring boosts, additive.
	RainyBoost   float64 `koanf:"rainy_boost"`
	SunnyBoost   float64 `koanf:"sunny_boost"`
	MorningBoost float64 `koanf:"morning_boost"`
	EveningBoost float64 `koanf:"evening_boost"`

	// RatingWeight multiplies the aggregate rating in the context score.
	RatingWeight float64 `koanf:"rating_weight"`

	// VotesDivisor divides the vote count in the context score.
	VotesDivisor float64 `koanf:"votes_divisor"`
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Data.CatalogPath == "" {
		return fmt.Errorf("data.catalog_path is required")
	}
	if c.Data.BadgerDir == "" && !c.Data.BadgerInMemory {
		return fmt.Errorf("data.badger_dir is required unless data.badger_in_memory is set")
	}
	if c.API.PageSize < 1 {
		return fmt.Errorf("api.page_size must be positive, got %d", c.API.PageSize)
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be in [10, 31], got %d", c.Security.BcryptCost)
	}
	if c.Recommend.Neighborhood < 1 {
		return fmt.Errorf("recommend.neighborhood must be positive, got %d", c.Recommend.Neighborhood)
	}
	if c.Recommend.LikedThreshold < 0 || c.Recommend.LikedThreshold > 5 {
		return fmt.Errorf("recommend.liked_threshold must be in [0, 5], got %v", c.Recommend.LikedThreshold)
	}
	if c.Recommend.MaxVocabulary < 1 {
		return fmt.Errorf("recommend.max_vocabulary must be positive, got %d", c.Recommend.MaxVocabulary)
	}
	return nil
}
