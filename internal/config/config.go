// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all repcache data.
	BaseDir string

	// API settings for the remote backend.
	API APIConfig

	// Sync settings for the catalog download.
	Sync SyncConfig
}

// APIConfig holds remote backend settings. The auth provider itself is
// external; the token is carried as an opaque bearer credential.
type APIConfig struct {
	BaseURL   string
	AuthToken string
	UserID    string
	RateLimit int // requests per minute
}

// SyncConfig holds catalog download settings.
type SyncConfig struct {
	PageSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("REPCACHE_DATA_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if url := os.Getenv("REPCACHE_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if token := os.Getenv("REPCACHE_AUTH_TOKEN"); token != "" {
		cfg.API.AuthToken = token
	}
	if userID := os.Getenv("REPCACHE_USER_ID"); userID != "" {
		cfg.API.UserID = userID
	}
	if raw := os.Getenv("REPCACHE_PAGE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid REPCACHE_PAGE_SIZE %q", raw)
		}
		cfg.Sync.PageSize = size
	}
	if raw := os.Getenv("REPCACHE_RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid REPCACHE_RATE_LIMIT %q", raw)
		}
		cfg.API.RateLimit = limit
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
