// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package config loads and validates service configuration.

# Configuration Sources

Sources are layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (structs provider)
 2. YAML file: CONFIG_PATH, else config.yaml, config.yml or
    /etc/tasteprofile/config.yaml
 3. Environment variables

Only the environment variables listed in envMappings are read. Comma
separated values are accepted for ENRICH_CATEGORIES and CORS_ORIGINS.

# Environment Variables

Upstream insights API:
  - TASTE_API_URL: Base URL, no path or query (required with a key)
  - TASTE_API_KEY: API key; empty runs in fallback-only mode
  - TASTE_API_KEY_HEADER: Header carrying the key (default: X-Api-Key)
  - TASTE_REQUEST_TIMEOUT: Per-request timeout (default: 10s)

Outbound pacing:
  - LIMITER_MAX_CONCURRENT: Concurrent upstream calls (default: 2)
  - LIMITER_MIN_SPACING: Minimum gap between call starts (default: 250ms)
  - RETRY_MAX_RETRIES, RETRY_BASE_DELAY, RETRY_MAX_DELAY, RETRY_MAX_JITTER,
    RETRY_MAX_RETRY_AFTER
  - BREAKER_ENABLED, BREAKER_MAX_REQUESTS, BREAKER_INTERVAL,
    BREAKER_TIMEOUT, BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO
  - CACHE_TTL: Lifetime of cached category results (default: 5m)

Enrichment:
  - ENRICH_CATEGORIES: Categories fetched per persona (default: all)
  - ENRICH_RESULT_COUNT: Items requested per category (default: 5)
  - ENRICH_MAX_INTEREST_TAGS: Interest tags kept per persona (default: 6)
  - ENRICH_BATCH_SIZE, ENRICH_BATCH_DELAY: Batch pacing (default: 2, 500ms)
  - ENRICH_MAX_BATCH_RECORDS: Largest accepted batch (default: 50)

HTTP API:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8088), HTTP_TIMEOUT,
    SHUTDOWN_TIMEOUT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS (default: *)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file and line

# Validation

Validate runs after loading and fails fast on values that would only show
up as runtime errors: unknown categories, a key without a URL, sample
placeholder keys, or retry and breaker settings outside their bounds.

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	if !cfg.UpstreamConfigured() {
	    // every category will use curated fallback data
	}
*/
package config
