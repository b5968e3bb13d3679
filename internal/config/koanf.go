// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

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

	"github.com/tomtom215/tasteprofile/internal/fallback"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tasteprofile/config.yaml",
	"/etc/tasteprofile/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			URL:            "",
			APIKey:         "", // empty = fallback-only mode
			APIKeyHeader:   "X-Api-Key",
			RequestTimeout: 10 * time.Second,
		},
		Limiter: LimiterConfig{
			MaxConcurrent: 2,
			MinSpacing:    250 * time.Millisecond,
		},
		Retry: RetryConfig{
			MaxRetries:    3,
			BaseDelay:     500 * time.Millisecond,
			MaxDelay:      8 * time.Second,
			MaxJitter:     250 * time.Millisecond,
			MaxRetryAfter: 30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Enrich: EnrichConfig{
			Categories:      fallback.Categories(),
			ResultCount:     5,
			MaxInterestTags: 6,
			BatchSize:       2,
			BatchDelay:      500 * time.Millisecond,
			MaxBatchRecords: 50,
		},
		Server: ServerConfig{
			Port:            8088,
			Host:            "0.0.0.0",
			Timeout:         2 * time.Minute, // batch requests wait on upstream retries
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TASTE_API_KEY -> upstream.api_key
	// ENRICH_BATCH_SIZE -> enrich.batch_size
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// normalize trims values that commonly arrive with stray whitespace.
func (c *Config) normalize() {
	c.Upstream.URL = strings.TrimSpace(c.Upstream.URL)
	c.Upstream.APIKey = strings.TrimSpace(c.Upstream.APIKey)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	for i, cat := range c.Enrich.Categories {
		c.Enrich.Categories[i] = strings.ToLower(strings.TrimSpace(cat))
	}
}

// findConfigFile returns the first config file found, or "" if none exists.
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

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"enrich.categories",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML already yields slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Upstream
	"taste_api_url":         "upstream.url",
	"taste_api_key":         "upstream.api_key",
	"taste_api_key_header":  "upstream.api_key_header",
	"taste_request_timeout": "upstream.request_timeout",

	// Outbound throttling
	"limiter_max_concurrent": "limiter.max_concurrent",
	"limiter_min_spacing":    "limiter.min_spacing",
	"retry_max_retries":      "retry.max_retries",
	"retry_base_delay":       "retry.base_delay",
	"retry_max_delay":        "retry.max_delay",
	"retry_max_jitter":       "retry.max_jitter",
	"retry_max_retry_after":  "retry.max_retry_after",

	// Cache
	"cache_ttl": "cache.ttl",

	// Circuit breaker
	"breaker_enabled":       "breaker.enabled",
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Enrichment
	"enrich_categories":        "enrich.categories",
	"enrich_result_count":      "enrich.result_count",
	"enrich_max_interest_tags": "enrich.max_interest_tags",
	"enrich_batch_size":        "enrich.batch_size",
	"enrich_batch_delay":       "enrich.batch_delay",
	"enrich_max_batch_records": "enrich.max_batch_records",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// never pollutes the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
