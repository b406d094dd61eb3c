// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/savora/config.yaml",
	"/etc/savora/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces Savora environment variables.
const envPrefix = "SAVORA_"

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8420,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			CatalogPath:       "data/restaurants.json",
			RatingsImportPath: "data/ratings.json",
			BadgerDir:         "/data/savora",
			BadgerInMemory:    false,
			SeedSampleRatings: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		API: APIConfig{
			PageSize:              20,
			RateLimitReqs:         300,
			RateLimitWindow:       time.Minute,
			AuthRateLimitReqs:     10,
			RatingWritesPerSecond: 5,
			RatingWriteBurst:      10,
			CORSAllowedOrigins:    []string{"*"},
		},
		Security: SecurityConfig{
			JWTSecret:  "",
			TokenTTL:   24 * time.Hour,
			BcryptCost: 12,
		},
		Recommend: RecommendConfig{
			MaxVocabulary:    20000,
			DisableTextIndex: false,
			Neighborhood:     3,
			LikedThreshold:   4.0,
			RainyBoost:       30,
			SunnyBoost:       20,
			MorningBoost:     40,
			EveningBoost:     25,
			RatingWeight:     2,
			VotesDivisor:     100,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// SAVORA_SERVER_PORT -> server.port
	// SAVORA_RECOMMEND_LIKED_THRESHOLD -> recommend.liked_threshold
	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform maps SAVORA_SECTION_SOME_KEY to section.some_key. Only the
// first underscore separates the section; the rest of the name is the key.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return s
	}
	return parts[0] + "." + parts[1]
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
