// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Validation:
// Load() returns an error if required fields are missing (STEAM_API_KEY,
// CATALOG_PATH) or malformed (invalid URL, out-of-range limits).
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Steam     SteamConfig     `koanf:"steam"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SteamConfig holds Steam Web API connection settings.
//
// Environment Variables:
//   - STEAM_API_KEY: Web API key from https://steamcommunity.com/dev/apikey (required)
//   - STEAM_BASE_URL: API base URL (default: https://api.steampowered.com)
//   - STEAM_TIMEOUT: Per-request timeout (default: 10s)
//   - STEAM_RATE_LIMIT: Requests per second to the Steam API (default: 5)
type SteamConfig struct {
	APIKey    string        `koanf:"api_key"`
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
}

// CatalogConfig holds game catalogue source settings.
// The catalogue CSV is loaded once at startup; a missing or malformed
// file is a fatal startup error.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// RecommendConfig holds recommendation pipeline settings.
//
// MinGames is the minimum number of owned games a library must contain
// before a taste profile is considered meaningful. TopN is the default
// number of recommendations returned when the request does not specify one.
type RecommendConfig struct {
	TopN     int `koanf:"top_n"`
	MinGames int `koanf:"min_games"`
	MaxTopN  int `koanf:"max_top_n"`
}

// CacheConfig holds owned-games cache settings.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig holds HTTP API behaviour settings.
type APIConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSteam() error {
	if c.Steam.APIKey == "" {
		return fmt.Errorf("STEAM_API_KEY is required")
	}
	if c.Steam.BaseURL == "" {
		return fmt.Errorf("STEAM_BASE_URL must not be empty")
	}
	if err := validateHTTPURL(c.Steam.BaseURL, "STEAM_BASE_URL"); err != nil {
		return err
	}
	if c.Steam.Timeout <= 0 {
		return fmt.Errorf("STEAM_TIMEOUT must be positive, got %v", c.Steam.Timeout)
	}
	if c.Steam.RateLimit <= 0 {
		return fmt.Errorf("STEAM_RATE_LIMIT must be positive, got %v", c.Steam.RateLimit)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("RECOMMEND_TOP_N must be at least 1, got %d", c.Recommend.TopN)
	}
	if c.Recommend.MaxTopN < c.Recommend.TopN {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N (%d) must be >= RECOMMEND_TOP_N (%d)",
			c.Recommend.MaxTopN, c.Recommend.TopN)
	}
	if c.Recommend.MinGames < 1 {
		return fmt.Errorf("RECOMMEND_MIN_GAMES must be at least 1, got %d", c.Recommend.MinGames)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL verifies the value parses as an absolute http or https URL
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}

// Addr returns the listen address in host:port form
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
