// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tasteprofile/internal/taste"
)

// Health status values.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	// Status is "degraded" when every category will be served from
	// fallback data: no API key, or the circuit breaker is open.
	Status             string      `json:"status"`
	Version            string      `json:"version"`
	UpstreamConfigured bool        `json:"upstream_configured"`
	BreakerState       string      `json:"breaker_state"`
	Cache              CacheHealth `json:"cache"`
	UptimeSeconds      float64     `json:"uptime_seconds"`
}

// CacheHealth summarizes response cache counters.
type CacheHealth struct {
	Entries   int     `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
	TTL       string  `json:"ttl"`
}

// Health handles GET /api/v1/health. It always answers 200; degraded mode
// is reported in the body because the service keeps serving fallback data.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	fetcher := h.enricher.Fetcher()
	configured := fetcher.Configured()
	breakerState := fetcher.Client().BreakerState()

	status := HealthOK
	if !configured || breakerState == taste.BreakerStateOpen {
		status = HealthDegraded
	}

	c := fetcher.Cache()
	stats := c.GetStats()

	NewResponseWriter(w, r).Success(HealthStatus{
		Status:             status,
		Version:            h.config.Version,
		UpstreamConfigured: configured,
		BreakerState:       breakerState,
		Cache: CacheHealth{
			Entries:   c.Len(),
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			HitRate:   c.HitRate(),
			TTL:       c.TTL().String(),
		},
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles GET /api/v1/health/live for liveness probes.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": HealthOK})
}
