// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/tasteprofile/internal/config"
	"github.com/tomtom215/tasteprofile/internal/logging"
	"github.com/tomtom215/tasteprofile/internal/models"
	"github.com/tomtom215/tasteprofile/internal/taste"
)

func captureGlobalLogs(w io.Writer) func() {
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(w))
	return func() { logging.SetLogger(prev) }
}

func testConfig() *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			APIKeyHeader:   "X-Api-Key",
			RequestTimeout: 2 * time.Second,
		},
		Limiter: config.LimiterConfig{MaxConcurrent: 2},
		Retry:   config.RetryConfig{MaxRetries: 0},
		Cache:   config.CacheConfig{TTL: time.Minute},
		Breaker: config.BreakerConfig{Enabled: false},
		Enrich: config.EnrichConfig{
			Categories:      []string{"music", "movie"},
			ResultCount:     3,
			MaxInterestTags: 4,
			BatchSize:       2,
			MaxBatchRecords: 10,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:   30,
			RateLimitWindow: 10 * time.Second,
			CORSOrigins:     []string{"https://app.example.com"},
		},
	}
}

func TestBuildEnricher_FallbackOnly(t *testing.T) {
	enricher := buildEnricher(testConfig())

	if enricher.Fetcher().Configured() {
		t.Fatal("fetcher without API key should not be configured")
	}
	if got := enricher.Fetcher().Client().BreakerState(); got != taste.BreakerStateDisabled {
		t.Errorf("breaker state = %q, want %q", got, taste.BreakerStateDisabled)
	}
	if got := enricher.Fetcher().Cache().TTL(); got != time.Minute {
		t.Errorf("cache TTL = %v, want 1m", got)
	}

	cats := enricher.Categories()
	if len(cats) != 2 || cats[0] != "music" || cats[1] != "movie" {
		t.Errorf("categories = %v, want [music movie]", cats)
	}

	profile := enricher.EnrichOne(context.Background(), models.PersonaProfile{Age: 30})
	if !profile.Degraded {
		t.Error("profile without upstream should be degraded")
	}
	for _, name := range cats {
		if src := profile.Categories[name].Source; src != models.SourceFallback {
			t.Errorf("%s source = %q, want fallback", name, src)
		}
	}
}

func TestBuildEnricher_LiveUpstream(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("X-Api-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"entities":[{"name":"One"},{"name":"Two"}]}}`))
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.Upstream.URL = upstream.URL
	cfg.Upstream.APIKey = "test-key"
	cfg.Breaker = config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  5,
		FailureRatio: 0.5,
	}

	enricher := buildEnricher(cfg)
	if !enricher.Fetcher().Configured() {
		t.Fatal("fetcher with URL and key should be configured")
	}
	if got := enricher.Fetcher().Client().BreakerState(); got != taste.BreakerStateClosed {
		t.Errorf("breaker state = %q, want %q", got, taste.BreakerStateClosed)
	}

	profile := enricher.EnrichOne(context.Background(), models.PersonaProfile{Age: 30})
	for _, name := range []string{"music", "movie"} {
		res := profile.Categories[name]
		if res.Source != models.SourceLive {
			t.Errorf("%s source = %q, want live", name, res.Source)
		}
		if len(res.Items) != 2 {
			t.Errorf("%s items = %v, want 2 entries", name, res.Items)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestMiddlewareConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitDisabled = true

	mw := middlewareConfig(cfg)

	if len(mw.CORSAllowedOrigins) != 1 || mw.CORSAllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("CORS origins = %v", mw.CORSAllowedOrigins)
	}
	if mw.RateLimitRequests != 30 {
		t.Errorf("rate limit requests = %d, want 30", mw.RateLimitRequests)
	}
	if mw.RateLimitWindow != 10*time.Second {
		t.Errorf("rate limit window = %v, want 10s", mw.RateLimitWindow)
	}
	if !mw.RateLimitDisabled {
		t.Error("rate limiting should be disabled")
	}
	if mw.CORSMaxAge != 86400 {
		t.Errorf("CORS max age = %d, want default 86400", mw.CORSMaxAge)
	}
}

func TestLogConfigurationRedactsKey(t *testing.T) {
	cfg := testConfig()
	cfg.Upstream.URL = "https://api.example.com"
	cfg.Upstream.APIKey = "super-secret-api-key"

	var buf strings.Builder
	restore := captureGlobalLogs(&buf)
	defer restore()

	logConfiguration(cfg)

	out := buf.String()
	if strings.Contains(out, "super-secret-api-key") {
		t.Errorf("log output leaked the API key: %s", out)
	}
	if !strings.Contains(out, "Configuration loaded") {
		t.Errorf("log output missing configuration line: %s", out)
	}
}
