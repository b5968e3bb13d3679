// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestInsightsSendsHeaderAndQuery(t *testing.T) {
	var gotKey, gotAccept, gotPath string
	up := newMockUpstream(t, func(w http.ResponseWriter, r *http.Request, _ int) {
		gotKey = r.Header.Get("X-Custom-Key")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		writeEntities(w, "Justice")
	})

	c := NewClient(ClientConfig{BaseURL: up.URL + "/", APIKey: " " + testAPIKey + " ", APIKeyHeader: "X-Custom-Key"}, nil)
	cat, _ := Lookup("music")
	names, err := c.Insights(context.Background(), cat, cat.Signature(lyonSignals(), 5))
	if err != nil {
		t.Fatalf("Insights() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Justice"}) {
		t.Errorf("Insights() = %v", names)
	}
	if gotKey != testAPIKey {
		t.Errorf("api key header = %q, want %q", gotKey, testAPIKey)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotPath != insightsPath {
		t.Errorf("path = %q, want %q", gotPath, insightsPath)
	}
}

func TestInsightsNotConfigured(t *testing.T) {
	tests := []ClientConfig{
		{BaseURL: "http://example.invalid"},
		{BaseURL: "http://example.invalid", APIKey: "   "},
		{APIKey: testAPIKey},
	}
	cat, _ := Lookup("book")
	for _, cfg := range tests {
		c := NewClient(cfg, nil)
		if c.Configured() {
			t.Errorf("Configured() = true for %+v", cfg)
		}
		if _, err := c.Insights(context.Background(), cat, cat.Signature(lyonSignals(), 5)); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("Insights() error = %v, want ErrNotConfigured", err)
		}
	}
}

func TestInsightsClassifiesFailures(t *testing.T) {
	tests := []struct {
		name     string
		handler  func(w http.ResponseWriter)
		wantKind Kind
	}{
		{"auth", func(w http.ResponseWriter) { w.WriteHeader(http.StatusUnauthorized) }, KindAuth},
		{"rate limited", func(w http.ResponseWriter) {
			w.Header().Set("Retry-After", "4")
			w.WriteHeader(http.StatusTooManyRequests)
		}, KindRateLimited},
		{"server error", func(w http.ResponseWriter) { w.WriteHeader(http.StatusServiceUnavailable) }, KindTransient},
		{"bad json", func(w http.ResponseWriter) { _, _ = w.Write([]byte("{not json")) }, KindTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newMockUpstream(t, func(w http.ResponseWriter, _ *http.Request, _ int) { tt.handler(w) })
			c := NewClient(ClientConfig{BaseURL: up.URL, APIKey: testAPIKey}, nil)
			cat, _ := Lookup("movie")

			_, err := c.Insights(context.Background(), cat, cat.Signature(lyonSignals(), 5))
			var ue *UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("Insights() error = %v, want *UpstreamError", err)
			}
			if ue.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", ue.Kind, tt.wantKind)
			}
		})
	}
}

func TestInsightsTimeoutIsTransient(t *testing.T) {
	up := newMockUpstream(t, func(w http.ResponseWriter, r *http.Request, _ int) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	c := NewClient(ClientConfig{BaseURL: up.URL, APIKey: testAPIKey, RequestTimeout: 20 * time.Millisecond}, nil)
	cat, _ := Lookup("movie")

	_, err := c.Insights(context.Background(), cat, cat.Signature(lyonSignals(), 5))
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Kind != KindTransient {
		t.Fatalf("Insights() error = %v, want transient UpstreamError", err)
	}
	if !IsRetryable(err) {
		t.Error("per-request timeout should be retryable")
	}
}

func TestResponseNames(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"nested results", `{"results":{"entities":[{"name":"A"},{"name":"B"}]}}`, []string{"A", "B"}},
		{"top level entities", `{"entities":[{"name":"C"}]}`, []string{"C"}},
		{"title fallback", `{"results":{"entities":[{"name":" ","title":"Dune"}]}}`, []string{"Dune"}},
		{"nested preferred", `{"results":{"entities":[{"name":"X"}]},"entities":[{"name":"Y"}]}`, []string{"X"}},
		{"empty", `{"results":{"entities":[]}}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r insightsResponse
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := r.names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("names() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBreakerStateReportedByClient(t *testing.T) {
	if got := NewClient(ClientConfig{}, nil).BreakerState(); got != "disabled" {
		t.Errorf("BreakerState() = %s, want disabled", got)
	}
	var none *Client
	if got := none.BreakerState(); got != BreakerStateDisabled {
		t.Errorf("nil BreakerState() = %s, want disabled", got)
	}
	b := testBreaker("client-state")
	if got := NewClient(ClientConfig{}, b).BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %s, want closed", got)
	}
}
