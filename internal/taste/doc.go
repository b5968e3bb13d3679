// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package taste fetches per-category recommendations from the external
insights API.

# Overview

A Fetcher answers one category at a time and never returns an error: every
call yields a models.CategoryResult whose Source says where the items came
from (live, cache or fallback). The layers, outermost first:

  - Category registry: entity type and allowed signals per category
  - Cache: keyed by the exact query signature sent upstream
  - Flight: concurrent misses for one signature share a single fetch
  - Retry (Run): bounded exponential backoff with jitter, honoring Retry-After
  - RateLimiter: concurrency cap plus minimum spacing, acquired per attempt
  - Breaker: gobreaker circuit around the HTTP call
  - Client: one GET with a per-request timeout

Failures are classified into Kind values. Auth and request-shape failures
are never retried and are logged once per process. Rate-limited and
transient failures are retried until MaxRetries, after which the category
falls back to curated data from package fallback. A Retry-After hint longer
than MaxRetryAfter ends the loop at once.

# Usage Example

	breaker := taste.NewBreaker(taste.DefaultBreakerConfig())
	client := taste.NewClient(taste.ClientConfig{
	    BaseURL: "https://api.example.com",
	    APIKey:  key,
	}, breaker)
	f := taste.NewFetcher(client, cache.New(5*time.Minute),
	    taste.NewRateLimiter(2, 250*time.Millisecond), taste.DefaultRetryPolicy())

	res := f.Fetch(ctx, "music", signalSet, 5)
*/
package taste
