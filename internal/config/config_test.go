// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"missing catalog path", func(c *Config) { c.Data.CatalogPath = "" }, true},
		{"missing badger dir", func(c *Config) { c.Data.BadgerDir = "" }, true},
		{"in-memory needs no badger dir", func(c *Config) {
			c.Data.BadgerDir = ""
			c.Data.BadgerInMemory = true
		}, false},
		{"zero page size", func(c *Config) { c.API.PageSize = 0 }, true},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, true},
		{"adequate jwt secret", func(c *Config) {
			c.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
		}, false},
		{"bcrypt cost too low", func(c *Config) { c.Security.BcryptCost = 4 }, true},
		{"zero neighborhood", func(c *Config) { c.Recommend.Neighborhood = 0 }, true},
		{"threshold out of range", func(c *Config) { c.Recommend.LikedThreshold = 6 }, true},
		{"zero vocabulary", func(c *Config) { c.Recommend.MaxVocabulary = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SAVORA_SERVER_PORT", "server.port"},
		{"SAVORA_RECOMMEND_LIKED_THRESHOLD", "recommend.liked_threshold"},
		{"SAVORA_API_RATE_LIMIT_REQUESTS", "api.rate_limit_requests"},
		{"SAVORA_LOGGING_LEVEL", "logging.level"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
data:
  badger_in_memory: true
recommend:
  liked_threshold: 3.5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SAVORA_SERVER_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Env beats file, file beats defaults.
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.Recommend.LikedThreshold != 3.5 {
		t.Errorf("liked_threshold = %v, want file value 3.5", cfg.Recommend.LikedThreshold)
	}
	if !cfg.Data.BadgerInMemory {
		t.Error("badger_in_memory from file not applied")
	}
	// Untouched values keep defaults.
	if cfg.API.PageSize != 20 {
		t.Errorf("page_size = %d, want default 20", cfg.API.PageSize)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("SAVORA_SERVER_PORT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for port 0")
	}
}
