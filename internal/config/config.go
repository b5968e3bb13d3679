// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package config

import "time"

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in defaults for every setting
//  2. Config File: optional YAML file (config.yaml)
//  3. Environment Variables: override any mapped setting
//
// A missing upstream API key is not an error: the service starts and
// serves curated fallback data for every category.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Upstream UpstreamConfig `koanf:"upstream"`
	Limiter  LimiterConfig  `koanf:"limiter"`
	Retry    RetryConfig    `koanf:"retry"`
	Cache    CacheConfig    `koanf:"cache"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Enrich   EnrichConfig   `koanf:"enrich"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// UpstreamConfig holds the recommendation API connection settings.
//
// Environment Variables:
//   - TASTE_API_URL: API base URL, required when TASTE_API_KEY is set
//   - TASTE_API_KEY: API key; empty means fallback-only mode
//   - TASTE_API_KEY_HEADER: header carrying the key (default: X-Api-Key)
//   - TASTE_REQUEST_TIMEOUT: per-request timeout (default: 10s)
type UpstreamConfig struct {
	URL            string        `koanf:"url"`
	APIKey         string        `koanf:"api_key"`
	APIKeyHeader   string        `koanf:"api_key_header"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// LimiterConfig bounds outbound request concurrency and spacing.
type LimiterConfig struct {
	MaxConcurrent int           `koanf:"max_concurrent"`
	MinSpacing    time.Duration `koanf:"min_spacing"`
}

// RetryConfig controls backoff for transient and rate-limited failures.
type RetryConfig struct {
	MaxRetries    int           `koanf:"max_retries"`
	BaseDelay     time.Duration `koanf:"base_delay"`
	MaxDelay      time.Duration `koanf:"max_delay"`
	MaxJitter     time.Duration `koanf:"max_jitter"`
	MaxRetryAfter time.Duration `koanf:"max_retry_after"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// BreakerConfig holds circuit breaker settings for the upstream.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// EnrichConfig selects categories and paces batches.
//
// Environment Variables:
//   - ENRICH_CATEGORIES: comma-separated category list (default: all)
//   - ENRICH_BATCH_SIZE: personas enriched concurrently (default: 2)
//   - ENRICH_BATCH_DELAY: pause between chunks (default: 500ms)
type EnrichConfig struct {
	Categories      []string      `koanf:"categories"`
	ResultCount     int           `koanf:"result_count"`
	MaxInterestTags int           `koanf:"max_interest_tags"`
	BatchSize       int           `koanf:"batch_size"`
	BatchDelay      time.Duration `koanf:"batch_delay"`
	MaxBatchRecords int           `koanf:"max_batch_records"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds rate limiting and CORS settings for the HTTP API.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// UpstreamConfigured reports whether live upstream calls are possible.
func (c *Config) UpstreamConfigured() bool {
	return c.Upstream.APIKey != "" && c.Upstream.URL != ""
}
