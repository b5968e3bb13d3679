// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/tasteprofile/internal/fallback"
)

// Validate checks that configuration values are present and within bounds.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateUpstream,
		c.validateLimiter,
		c.validateRetry,
		c.validateCache,
		c.validateBreaker,
		c.validateEnrich,
		c.validateServer,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateUpstream only checks the URL when a key is set; no key means
// fallback-only mode.
func (c *Config) validateUpstream() error {
	if c.Upstream.RequestTimeout <= 0 {
		return fmt.Errorf("TASTE_REQUEST_TIMEOUT must be positive")
	}
	if c.Upstream.APIKey == "" {
		return nil
	}
	if containsPlaceholder(c.Upstream.APIKey) {
		return fmt.Errorf("TASTE_API_KEY contains a placeholder value, set a real key or leave it empty")
	}
	if c.Upstream.URL == "" {
		return fmt.Errorf("TASTE_API_URL is required when TASTE_API_KEY is set")
	}
	if strings.TrimSpace(c.Upstream.APIKeyHeader) == "" {
		return fmt.Errorf("TASTE_API_KEY_HEADER must not be empty")
	}
	return validateHTTPURL(c.Upstream.URL, "TASTE_API_URL")
}

func (c *Config) validateLimiter() error {
	if c.Limiter.MaxConcurrent < 1 {
		return fmt.Errorf("LIMITER_MAX_CONCURRENT must be at least 1")
	}
	if c.Limiter.MinSpacing < 0 {
		return fmt.Errorf("LIMITER_MIN_SPACING must not be negative")
	}
	return nil
}

// maxRetriesLimit keeps a misconfigured retry count from stalling batches.
const maxRetriesLimit = 10

func (c *Config) validateRetry() error {
	r := c.Retry
	if r.MaxRetries < 0 || r.MaxRetries > maxRetriesLimit {
		return fmt.Errorf("RETRY_MAX_RETRIES must be between 0 and %d", maxRetriesLimit)
	}
	if r.BaseDelay <= 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must be positive")
	}
	if r.MaxDelay < r.BaseDelay {
		return fmt.Errorf("RETRY_MAX_DELAY (%v) must not be less than RETRY_BASE_DELAY (%v)", r.MaxDelay, r.BaseDelay)
	}
	if r.MaxJitter < 0 {
		return fmt.Errorf("RETRY_MAX_JITTER must not be negative")
	}
	if r.MaxRetryAfter <= 0 {
		return fmt.Errorf("RETRY_MAX_RETRY_AFTER must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.Breaker.MinRequests == 0 {
		return fmt.Errorf("BREAKER_MIN_REQUESTS must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// Enrichment bounds
const (
	maxResultCount     = 50
	maxBatchRecordsCap = 500
)

func (c *Config) validateEnrich() error {
	e := c.Enrich
	if len(e.Categories) == 0 {
		return fmt.Errorf("ENRICH_CATEGORIES must name at least one category")
	}
	seen := make(map[string]bool, len(e.Categories))
	for _, cat := range e.Categories {
		if !fallback.Known(cat) {
			return fmt.Errorf("ENRICH_CATEGORIES contains unknown category %q (known: %s)",
				cat, strings.Join(fallback.Categories(), ", "))
		}
		if seen[cat] {
			return fmt.Errorf("ENRICH_CATEGORIES lists %q more than once", cat)
		}
		seen[cat] = true
	}
	if e.ResultCount < 1 || e.ResultCount > maxResultCount {
		return fmt.Errorf("ENRICH_RESULT_COUNT must be between 1 and %d", maxResultCount)
	}
	if e.MaxInterestTags < 1 {
		return fmt.Errorf("ENRICH_MAX_INTEREST_TAGS must be at least 1")
	}
	if e.BatchSize < 1 {
		return fmt.Errorf("ENRICH_BATCH_SIZE must be at least 1")
	}
	if e.BatchDelay < 0 {
		return fmt.Errorf("ENRICH_BATCH_DELAY must not be negative")
	}
	if e.MaxBatchRecords < 1 || e.MaxBatchRecords > maxBatchRecordsCap {
		return fmt.Errorf("ENRICH_MAX_BATCH_RECORDS must be between 1 and %d", maxBatchRecordsCap)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates inbound API rate limiting bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns flag values copied from sample config files.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR-API-KEY",
	"PLACEHOLDER",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
