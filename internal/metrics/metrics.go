// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Upstream recommendation API calls and retries
// - Category fetch outcomes by source
// - Response cache efficiency
// - Rate limiter waits
// - Circuit breaker state
// - Persona enrichment and the HTTP API

var (
	// Upstream API Metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_upstream_requests_total",
			Help: "Total number of requests sent to the recommendation API",
		},
		[]string{"category", "result"}, // result: "success", "auth", "request_shape", "rate_limited", "transient"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taste_upstream_request_duration_seconds",
			Help:    "Duration of recommendation API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"category"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_upstream_retries_total",
			Help: "Total number of retried upstream attempts",
		},
		[]string{"category", "reason"},
	)

	// Fetch Outcome Metrics
	FetchResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_fetch_results_total",
			Help: "Category fetch results by source",
		},
		[]string{"category", "source"}, // source: "live", "cache", "fallback"
	)

	FetchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_fetch_outcomes_total",
			Help: "Retry loop outcomes for live fetches",
		},
		[]string{"outcome"}, // "success", "exhausted", "aborted"
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taste_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taste_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taste_cache_evictions_total",
			Help: "Total number of response cache evictions (TTL expiry)",
		},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taste_cache_entries",
			Help: "Current number of cached responses",
		},
	)

	// Rate Limiter Metrics
	LimiterWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taste_limiter_wait_seconds",
			Help:    "Time spent waiting for an upstream permit",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	LimiterInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taste_limiter_in_flight",
			Help: "Current number of upstream permits held",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Enrichment Metrics
	EnrichDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taste_enrich_duration_seconds",
			Help:    "Time to enrich one persona across all categories",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	EnrichPersonas = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taste_enriched_personas_total",
			Help: "Total number of personas enriched",
		},
	)

	EnrichDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taste_enriched_personas_degraded_total",
			Help: "Personas whose categories all came from fallback data",
		},
	)

	EnrichBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taste_enrich_batch_size",
			Help:    "Number of personas per enrichment batch",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordUpstreamRequest records one attempt against the recommendation API.
func RecordUpstreamRequest(category, result string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(category, result).Inc()
	UpstreamRequestDuration.WithLabelValues(category).Observe(duration.Seconds())
}

// RecordRetry records a retried attempt and why it was retried.
func RecordRetry(category, reason string) {
	UpstreamRetries.WithLabelValues(category, reason).Inc()
}

// RecordFetch records where a category's items came from.
func RecordFetch(category, source string) {
	FetchResults.WithLabelValues(category, source).Inc()
}

// RecordOutcome records the terminal state of a retry loop.
func RecordOutcome(outcome string) {
	FetchOutcomes.WithLabelValues(outcome).Inc()
}

// RecordLimiterWait records time spent waiting for a permit.
func RecordLimiterWait(d time.Duration) {
	LimiterWait.Observe(d.Seconds())
}

// RecordEnrichment records one enriched persona.
func RecordEnrichment(duration time.Duration, degraded bool) {
	EnrichPersonas.Inc()
	EnrichDuration.Observe(duration.Seconds())
	if degraded {
		EnrichDegraded.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
