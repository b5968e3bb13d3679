// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tasteprofile/internal/cache"
	"github.com/tomtom215/tasteprofile/internal/enrich"
	"github.com/tomtom215/tasteprofile/internal/fallback"
	"github.com/tomtom215/tasteprofile/internal/models"
	"github.com/tomtom215/tasteprofile/internal/taste"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

type testServer struct {
	handler       http.Handler
	upstreamCalls *atomic.Int64
}

type serverOptions struct {
	apiKey     string
	status     int // upstream status; 0 means 200 with entities
	maxBatch   int
	categories []string
	mw         *ChiMiddlewareConfig
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	var calls atomic.Int64
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if opts.status != 0 {
			w.WriteHeader(opts.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":{"entities":[{"name":"Pick for %s"}]}}`, r.URL.Query().Get(taste.ParamFilterType))
	}))
	t.Cleanup(up.Close)

	client := taste.NewClient(taste.ClientConfig{
		BaseURL:        up.URL,
		APIKey:         opts.apiKey,
		RequestTimeout: 2 * time.Second,
	}, nil)
	policy := &taste.RetryPolicy{
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		Sleep:      func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	}
	fetcher := taste.NewFetcher(client, cache.New(time.Minute), taste.NewRateLimiter(4, -1), policy)
	enricher := enrich.New(fetcher, enrich.Config{Categories: opts.categories})

	mw := opts.mw
	if mw == nil {
		mw = &ChiMiddlewareConfig{RateLimitDisabled: true}
	}
	h := NewHandler(enricher, HandlerConfig{MaxBatchRecords: opts.maxBatch, Version: "test"})
	return &testServer{
		handler:       NewRouter(h, mw).SetupChi(),
		upstreamCalls: &calls,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env testEnvelope
	if path != "/metrics" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: response is not an envelope: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

const lyonRecord = `{
	"id": "p-1",
	"name": "Camille",
	"profile": {"age": 28, "location": "Lyon", "interests": ["Technologie"], "values": ["Innovation"]},
	"attributes": {"role": "designer", "goals": ["ship faster"]}
}`

func TestEnrich_Live(t *testing.T) {
	s := newTestServer(t, serverOptions{apiKey: "key"})

	rec, env := s.do(t, http.MethodPost, "/api/v1/enrich", lyonRecord)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var record models.PersonaRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatal(err)
	}
	if record.ID != "p-1" || record.Name != "Camille" || record.Attributes["role"] != "designer" {
		t.Errorf("record passthrough lost fields: %+v", record)
	}
	if record.Cultural == nil {
		t.Fatal("cultural_data missing")
	}
	music := record.Cultural.Categories[fallback.CategoryMusic]
	if music.Source != models.SourceLive || len(music.Items) != 1 || music.Items[0] != "Pick for urn:entity:artist" {
		t.Errorf("music = %+v", music)
	}
	if len(record.Cultural.Categories) != len(fallback.Categories()) {
		t.Errorf("got %d categories", len(record.Cultural.Categories))
	}
	if record.Cultural.Degraded {
		t.Error("live enrichment marked degraded")
	}
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Error("meta.request_id missing")
	}
	if rec.Header().Get("X-Request-ID") != env.Meta.RequestID {
		t.Error("X-Request-ID header does not match meta.request_id")
	}
}

func TestEnrich_UpstreamTroubleStill200(t *testing.T) {
	tests := []struct {
		name   string
		opts   serverOptions
		called bool
	}{
		{"missing api key", serverOptions{}, false},
		{"upstream 500", serverOptions{apiKey: "key", status: http.StatusInternalServerError}, true},
		{"upstream 403", serverOptions{apiKey: "key", status: http.StatusForbidden}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.opts)
			rec, env := s.do(t, http.MethodPost, "/api/v1/enrich", lyonRecord)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var record models.PersonaRecord
			if err := json.Unmarshal(env.Data, &record); err != nil {
				t.Fatal(err)
			}
			if !record.Cultural.Degraded {
				t.Error("expected degraded profile")
			}
			for name, r := range record.Cultural.Categories {
				if r.Source != models.SourceFallback || len(r.Items) == 0 {
					t.Errorf("%s = %+v, want non-empty fallback", name, r)
				}
			}
			if got := s.upstreamCalls.Load() > 0; got != tt.called {
				t.Errorf("upstream called = %v, want %v", got, tt.called)
			}
		})
	}
}

func TestEnrich_BadInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		status    int
		code      string
		wantField string
	}{
		{"negative age", `{"profile":{"age":-3}}`, http.StatusBadRequest, ErrCodeValidationFailed, "profile.age"},
		{"long interest", `{"profile":{"interests":["` + strings.Repeat("x", 201) + `"]}}`, http.StatusBadRequest, ErrCodeValidationFailed, "profile.interests[0]"},
		{"malformed json", `{"profile":`, http.StatusBadRequest, ErrCodeBadRequest, ""},
		{"wrong type", `{"profile":{"age":"old"}}`, http.StatusBadRequest, ErrCodeBadRequest, ""},
		{"empty body", ``, http.StatusBadRequest, ErrCodeBadRequest, ""},
		{"too large", `{"name":"` + strings.Repeat("x", maxRecordBodyBytes) + `"}`, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, ""},
	}
	s := newTestServer(t, serverOptions{apiKey: "key"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, "/api/v1/enrich", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if env.Success || env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.code)
			}
			if env.Error.RequestID == "" {
				t.Error("error.request_id missing")
			}
			if tt.wantField != "" && !strings.Contains(rec.Body.String(), `"field":"`+tt.wantField+`"`) {
				t.Errorf("details do not name %s: %s", tt.wantField, rec.Body.String())
			}
		})
	}
	if s.upstreamCalls.Load() != 0 {
		t.Error("invalid input reached upstream")
	}
}

func TestEnrichBatch(t *testing.T) {
	s := newTestServer(t, serverOptions{apiKey: "key", categories: []string{"music", "movie"}})

	body := `{"records":[
		{"id":"a","profile":{"age":19,"location":"Paris"}},
		{"id":"b","profile":{"age":45}},
		{"id":"c","profile":{"age":70,"interests":["gardening"]}}
	]}`
	rec, env := s.do(t, http.MethodPost, "/api/v1/enrich/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out BatchResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 3 {
		t.Fatalf("got %d records", len(out.Records))
	}
	for i, id := range []string{"a", "b", "c"} {
		if out.Records[i].ID != id {
			t.Errorf("records[%d].id = %q, want %q", i, out.Records[i].ID, id)
		}
		if got := out.Records[i].Cultural.CategoryOrder; len(got) != 2 {
			t.Errorf("records[%d] categories = %v", i, got)
		}
	}
	want := enrich.Summary{Personas: 3, Live: 6}
	if out.Summary != want {
		t.Errorf("summary = %+v, want %+v", out.Summary, want)
	}
}

func TestEnrichBatch_BadInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing records", `{}`, "records"},
		{"empty records", `{"records":[]}`, "records"},
		{"over configured max", `{"records":[{},{},{}]}`, "records"},
		{"nested field", `{"records":[{},{"profile":{"age":500}}]}`, "records[1].profile.age"},
	}
	s := newTestServer(t, serverOptions{apiKey: "key", maxBatch: 2})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, "/api/v1/enrich/batch", tt.body)
			if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `"field":"`+tt.wantField+`"`) {
				t.Errorf("details do not name %s: %s", tt.wantField, rec.Body.String())
			}
		})
	}
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, serverOptions{categories: []string{"music", "podcast"}})

	rec, env := s.do(t, http.MethodGet, "/api/v1/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var infos []CategoryInfo
	if err := json.Unmarshal(env.Data, &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(fallback.Categories()) {
		t.Fatalf("got %d categories", len(infos))
	}
	for _, info := range infos {
		wantEnabled := info.Name == "music" || info.Name == "podcast"
		if info.Enabled != wantEnabled {
			t.Errorf("%s enabled = %v", info.Name, info.Enabled)
		}
		if info.Name == "podcast" && (len(info.AllowedSignals) != 1 || info.AllowedSignals[0] != models.SignalInterest) {
			t.Errorf("podcast signals = %v", info.AllowedSignals)
		}
		if info.Name == "restaurant" && info.EntityType != "urn:entity:place" {
			t.Errorf("restaurant entity = %s", info.EntityType)
		}
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		wantStatus string
	}{
		{"fallback only", "", HealthDegraded},
		{"configured", "key", HealthOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, serverOptions{apiKey: tt.apiKey})
			rec, env := s.do(t, http.MethodGet, "/api/v1/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var health HealthStatus
			if err := json.Unmarshal(env.Data, &health); err != nil {
				t.Fatal(err)
			}
			if health.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", health.Status, tt.wantStatus)
			}
			if health.UpstreamConfigured != (tt.apiKey != "") {
				t.Errorf("upstream_configured = %v", health.UpstreamConfigured)
			}
			if health.BreakerState != taste.BreakerStateDisabled || health.Version != "test" {
				t.Errorf("health = %+v", health)
			}
			if health.Cache.TTL != "1m0s" {
				t.Errorf("cache ttl = %q", health.Cache.TTL)
			}
		})
	}
}

func TestHealth_WithoutClient(t *testing.T) {
	fetcher := taste.NewFetcher(nil, nil, nil, nil)
	h := NewHandler(enrich.New(fetcher, enrich.Config{}), HandlerConfig{})
	s := &testServer{
		handler:       NewRouter(h, &ChiMiddlewareConfig{RateLimitDisabled: true}).SetupChi(),
		upstreamCalls: &atomic.Int64{},
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var health HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != HealthDegraded || health.BreakerState != taste.BreakerStateDisabled {
		t.Errorf("health = %+v, want degraded with disabled breaker", health)
	}
}

func TestHealth_CacheCounters(t *testing.T) {
	s := newTestServer(t, serverOptions{apiKey: "key", categories: []string{"music"}})
	for i := 0; i < 2; i++ {
		if rec, _ := s.do(t, http.MethodPost, "/api/v1/enrich", lyonRecord); rec.Code != http.StatusOK {
			t.Fatalf("enrich status = %d", rec.Code)
		}
	}
	if got := s.upstreamCalls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (second served from cache)", got)
	}

	_, env := s.do(t, http.MethodGet, "/api/v1/health", "")
	var health HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Cache.Entries != 1 || health.Cache.Hits != 1 || health.Cache.Misses != 1 {
		t.Errorf("cache = %+v", health.Cache)
	}
}

func TestRouting(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	rec, env := s.do(t, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route = %d %s", rec.Code, rec.Body.String())
	}

	rec, env = s.do(t, http.MethodGet, "/api/v1/enrich", "")
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("GET enrich = %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("live = %d", rec.Code)
	}
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Cache-Control"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing security header %s", h)
		}
	}

	rec, _ = s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("go_goroutines")) {
		t.Errorf("metrics = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, serverOptions{mw: &ChiMiddlewareConfig{
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	}})

	if rec, _ := s.do(t, http.MethodGet, "/api/v1/categories", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d", rec.Code)
	}
	rec, env := s.do(t, http.MethodGet, "/api/v1/categories", "")
	if rec.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("second request = %d %s", rec.Code, rec.Body.String())
	}

	for i := 0; i < 3; i++ {
		if rec, _ := s.do(t, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusOK {
			t.Errorf("health request %d = %d, health must not be rate limited", i, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, serverOptions{mw: &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://app.example.com"},
		RateLimitDisabled:  true,
	}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/enrich", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/enrich", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin = %q", got)
	}
}
