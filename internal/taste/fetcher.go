// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/tasteprofile/internal/cache"
	"github.com/tomtom215/tasteprofile/internal/fallback"
	"github.com/tomtom215/tasteprofile/internal/logging"
	"github.com/tomtom215/tasteprofile/internal/metrics"
	"github.com/tomtom215/tasteprofile/internal/models"
)

// DefaultResultCount is the number of items requested per category.
const DefaultResultCount = 5

// Fetcher resolves one category for one signal set, preferring the cache,
// then the live API, then static fallback data. It never returns an error.
type Fetcher struct {
	client  *Client
	cache   *cache.Cache
	limiter *RateLimiter
	policy  *RetryPolicy

	// flights collapses concurrent misses for one signature into a
	// single upstream fetch.
	flights singleflight.Group

	// warned records failures that are only logged once, keyed by
	// kind and query shape.
	warned sync.Map
}

// NewFetcher wires a fetcher from its long-lived collaborators. Nil cache,
// limiter or policy arguments get default instances.
func NewFetcher(client *Client, c *cache.Cache, limiter *RateLimiter, policy *RetryPolicy) *Fetcher {
	if c == nil {
		c = cache.New(cache.DefaultTTL)
	}
	if limiter == nil {
		limiter = NewRateLimiter(DefaultMaxConcurrent, DefaultMinSpacing)
	}
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	return &Fetcher{client: client, cache: c, limiter: limiter, policy: policy}
}

// Configured reports whether live calls can be attempted at all.
func (f *Fetcher) Configured() bool {
	return f.client != nil && f.client.Configured()
}

// Cache exposes the response cache for health reporting.
func (f *Fetcher) Cache() *cache.Cache {
	return f.cache
}

// Client returns the underlying API client.
func (f *Fetcher) Client() *Client {
	return f.client
}

// Fetch returns the items for category. The result's Source reports
// whether they came from the cache, the live API or fallback data.
func (f *Fetcher) Fetch(ctx context.Context, category string, signals models.SignalSet, resultCount int) models.CategoryResult {
	if resultCount <= 0 {
		resultCount = DefaultResultCount
	}
	log := logging.Ctx(ctx)

	cat, ok := Lookup(category)
	if !ok {
		log.Debug().Str("category", category).Msg("Unknown category, returning empty fallback")
		return f.fallback(category, resultCount)
	}

	if !f.Configured() {
		return f.fallback(category, resultCount)
	}

	sig := cat.Signature(signals, resultCount)
	if items, hit := f.cache.Get(sig); hit {
		metrics.RecordFetch(category, string(models.SourceCache))
		return models.NewCategoryResult(category, items, models.SourceCache, resultCount)
	}

	v, _, _ := f.flights.Do(cache.GenerateKey(sig), func() (interface{}, error) {
		// a flight that finished after our miss may have filled the entry
		if items, ok := f.cache.Peek(sig); ok {
			return items, nil
		}
		items := f.fetchLive(ctx, cat, sig)
		if len(items) > 0 {
			f.cache.Put(sig, items)
		}
		return items, nil
	})

	items, _ := v.([]string)
	if len(items) == 0 {
		return f.fallback(category, resultCount)
	}
	metrics.RecordFetch(category, string(models.SourceLive))
	return models.NewCategoryResult(category, append([]string(nil), items...), models.SourceLive, resultCount)
}

// fetchLive runs the retry loop against the API and returns normalized
// items, or nil when the category should fall back.
func (f *Fetcher) fetchLive(ctx context.Context, cat Category, sig models.QuerySignature) []string {
	category := cat.Name
	var prevErr error
	res := Run(ctx, f.policy, func(ctx context.Context, attempt int) ([]string, error) {
		if attempt > 0 {
			metrics.RecordRetry(category, retryReason(prevErr))
		}
		permit, err := f.limiter.Acquire(ctx)
		if err != nil {
			prevErr = err
			return nil, err
		}
		defer f.limiter.Release(permit)

		start := time.Now()
		items, err := f.client.Insights(ctx, cat, sig)
		metrics.RecordUpstreamRequest(category, resultLabel(err), time.Since(start))
		prevErr = err
		return items, err
	})
	metrics.RecordOutcome(res.Outcome.String())

	if res.Outcome != OutcomeSuccess {
		f.logFailure(ctx, sig, res.Outcome, res.Attempts, res.LastErr)
		return nil
	}

	items := Normalize(res.Value, sig.ResultCount)
	if len(items) == 0 {
		logging.Ctx(ctx).Debug().Str("category", category).Msg("Upstream returned no usable items, using fallback")
	}
	return items
}

func (f *Fetcher) fallback(category string, resultCount int) models.CategoryResult {
	items := fallback.Synthesize(category)
	if len(items) > resultCount {
		items = items[:resultCount]
	}
	metrics.RecordFetch(category, string(models.SourceFallback))
	return models.NewCategoryResult(category, items, models.SourceFallback, resultCount)
}

// logFailure reports why a live fetch fell back. Request-shape and
// credential failures recur identically, so they are logged once per
// query shape.
func (f *Fetcher) logFailure(ctx context.Context, sig models.QuerySignature, outcome Outcome, attempts int, err error) {
	log := logging.Ctx(ctx)

	var ue *UpstreamError
	if errors.As(err, &ue) && (ue.Kind == KindRequestShape || ue.Kind == KindAuth) {
		key := ue.Kind.String() + ":" + sig.Shape()
		if ue.Kind == KindAuth {
			key = ue.Kind.String()
		}
		if _, seen := f.warned.LoadOrStore(key, struct{}{}); seen {
			return
		}
		log.Warn().
			Err(err).
			Str("category", sig.Category).
			Str("shape", sig.Shape()).
			Int("status", ue.StatusCode).
			Msg("Upstream rejected query, using fallback (logged once)")
		return
	}

	if errors.Is(err, ErrParamNotAllowed) {
		log.Error().Err(err).Str("category", sig.Category).Msg("Query built with a disallowed parameter")
		return
	}

	if ctx.Err() != nil {
		log.Debug().Err(err).Str("category", sig.Category).Msg("Fetch cancelled, using fallback")
		return
	}

	log.Warn().
		Err(err).
		Str("category", sig.Category).
		Str("outcome", outcome.String()).
		Int("attempts", attempts).
		Msg("Live fetch failed, using fallback")
}

func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind.String()
	}
	return "error"
}

func retryReason(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind.String()
	}
	return "other"
}
