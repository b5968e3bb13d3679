// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto at
package initialization and exposed by the HTTP server at /metrics.

# Available Metrics

Upstream Metrics:
  - taste_upstream_requests_total: attempts against the recommendation API
    Labels: category, result
  - taste_upstream_request_duration_seconds: attempt latency (histogram)
    Labels: category
  - taste_upstream_retries_total: retried attempts
    Labels: category, reason

Fetch Metrics:
  - taste_fetch_results_total: category results by source
    Labels: category, source (live, cache, fallback)
  - taste_fetch_outcomes_total: retry loop outcomes
    Labels: outcome (success, exhausted, aborted)

Cache Metrics:
  - taste_cache_hits_total, taste_cache_misses_total, taste_cache_evictions_total
  - taste_cache_entries: current entry count (gauge)

Limiter Metrics:
  - taste_limiter_wait_seconds: time waiting for a permit (histogram)
  - taste_limiter_in_flight: permits currently held (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

Enrichment Metrics:
  - taste_enrich_duration_seconds: per-persona enrichment time (histogram)
  - taste_enriched_personas_total, taste_enriched_personas_degraded_total
  - taste_enrich_batch_size: personas per batch (histogram)

API Metrics:
  - api_requests_total: Labels: method, endpoint, status_code
  - api_request_duration_seconds: Labels: method, endpoint
  - api_active_requests

# Example Queries

	# Share of categories served from fallback data
	sum(rate(taste_fetch_results_total{source="fallback"}[5m]))
	  / sum(rate(taste_fetch_results_total[5m]))

	# Cache hit rate
	rate(taste_cache_hits_total[5m])
	  / (rate(taste_cache_hits_total[5m]) + rate(taste_cache_misses_total[5m]))
*/
package metrics
