// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tasteprofile/internal/logging"
	"github.com/tomtom215/tasteprofile/internal/models"
)

// Client defaults.
const (
	DefaultAPIKeyHeader   = "X-Api-Key"
	DefaultRequestTimeout = 10 * time.Second
	insightsPath          = "/v2/insights"
)

// ClientConfig configures the recommendation API client.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	APIKeyHeader   string
	RequestTimeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client performs single requests against the insights endpoint.
//
// A Client is built once per process and shared. It makes exactly one
// HTTP request per Insights call; retries, caching and rate limiting are
// layered on top by Fetcher. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	header     string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *Breaker
}

// NewClient creates a client. A missing API key is reported once here; the
// returned client then answers every call with ErrNotConfigured.
func NewClient(cfg ClientConfig, breaker *Breaker) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		header:     cfg.APIKeyHeader,
		timeout:    cfg.RequestTimeout,
		httpClient: cfg.HTTPClient,
		breaker:    breaker,
	}
	if c.header == "" {
		c.header = DefaultAPIKeyHeader
	}
	if c.timeout <= 0 {
		c.timeout = DefaultRequestTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.apiKey == "" {
		logging.Warn().Msg("Recommendation API key not configured, all categories will use fallback data")
	}
	return c
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseURL != ""
}

// BreakerState returns the circuit breaker state for health reporting.
// A nil Client reports BreakerStateDisabled.
func (c *Client) BreakerState() string {
	if c == nil {
		return BreakerStateDisabled
	}
	return c.breaker.State()
}

// insightsResponse is decoded narrowly: only entity names survive.
type insightsResponse struct {
	Results *struct {
		Entities []entity `json:"entities"`
	} `json:"results"`
	Entities []entity `json:"entities"`
}

type entity struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Insights requests recommendations for one category. The returned names
// are raw; callers normalize them.
func (c *Client) Insights(ctx context.Context, cat Category, sig models.QuerySignature) ([]string, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	query, err := cat.Query(sig)
	if err != nil {
		return nil, err
	}
	return c.breaker.Execute(func() ([]string, error) {
		return c.get(ctx, cat.Name, c.baseURL+insightsPath+"?"+query.Encode())
	})
}

func (c *Client) get(ctx context.Context, category, reqURL string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", category, err)
	}
	req.Header.Set(c.header, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransient, Err: fmt.Errorf("%s request failed: %w", category, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return nil, classifyResponse(resp.StatusCode, resp.Header, body, time.Now())
	}

	var decoded insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &UpstreamError{
			Kind:       KindTransient,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode %s response: %w", category, err),
		}
	}
	return decoded.names(), nil
}

func (r *insightsResponse) names() []string {
	entities := r.Entities
	if r.Results != nil && len(r.Results.Entities) > 0 {
		entities = r.Results.Entities
	}
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		name := e.Name
		if strings.TrimSpace(name) == "" {
			name = e.Title
		}
		out = append(out, name)
	}
	return out
}

// Normalize trims names, drops blanks and case-insensitive duplicates and
// keeps at most limit items. The first spelling of a duplicate wins.
func Normalize(names []string, limit int) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
