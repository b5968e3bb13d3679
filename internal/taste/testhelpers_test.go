// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/tasteprofile/internal/cache"
	"github.com/tomtom215/tasteprofile/internal/models"
)

const testAPIKey = "test-key"

// mockUpstream is an httptest server counting requests per category.
type mockUpstream struct {
	*httptest.Server

	total atomic.Int64
	mu    sync.Mutex
	calls map[string]int
}

func newMockUpstream(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, n int)) *mockUpstream {
	t.Helper()
	m := &mockUpstream{calls: map[string]int{}}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.total.Add(1)
		ft := r.URL.Query().Get(ParamFilterType)
		m.mu.Lock()
		m.calls[ft]++
		n := m.calls[ft]
		m.mu.Unlock()
		handler(w, r, n)
	}))
	t.Cleanup(m.Close)
	return m
}

// callsFor returns the number of requests seen for a category.
func (m *mockUpstream) callsFor(category string) int {
	cat, _ := Lookup(category)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[cat.EntityType]
}

func writeEntities(w http.ResponseWriter, names ...string) {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf(`{"name":%q,"popularity":0.9}`, n)
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success":true,"results":{"entities":[%s]}}`, strings.Join(parts, ","))
}

// instantPolicy retries without sleeping and records requested waits.
func instantPolicy(maxRetries int) *RetryPolicy {
	return &RetryPolicy{
		MaxRetries: maxRetries,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   80 * time.Millisecond,
		Sleep:      func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	}
}

func newTestFetcher(baseURL, apiKey string, policy *RetryPolicy) *Fetcher {
	client := NewClient(ClientConfig{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		RequestTimeout: 2 * time.Second,
	}, nil)
	return NewFetcher(client, cache.New(time.Minute), NewRateLimiter(2, -1), policy)
}

func lyonSignals() models.SignalSet {
	return models.SignalSet{
		models.SignalAudience: "millennials",
		models.SignalLocation: "FR-ARA",
		models.SignalInterest: "technology,innovation",
	}
}
