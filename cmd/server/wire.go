// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package main

import (
	"github.com/tomtom215/tasteprofile/internal/api"
	"github.com/tomtom215/tasteprofile/internal/cache"
	"github.com/tomtom215/tasteprofile/internal/config"
	"github.com/tomtom215/tasteprofile/internal/enrich"
	"github.com/tomtom215/tasteprofile/internal/taste"
)

// buildEnricher constructs the enrichment pipeline once. The client, cache,
// limiter and breaker are shared by every request for the process lifetime.
func buildEnricher(cfg *config.Config) *enrich.Enricher {
	breaker := taste.NewBreaker(taste.BreakerConfig{
		Enabled:      cfg.Breaker.Enabled,
		Name:         "taste-api",
		MaxRequests:  cfg.Breaker.MaxRequests,
		Interval:     cfg.Breaker.Interval,
		Timeout:      cfg.Breaker.Timeout,
		MinRequests:  cfg.Breaker.MinRequests,
		FailureRatio: cfg.Breaker.FailureRatio,
	})

	client := taste.NewClient(taste.ClientConfig{
		BaseURL:        cfg.Upstream.URL,
		APIKey:         cfg.Upstream.APIKey,
		APIKeyHeader:   cfg.Upstream.APIKeyHeader,
		RequestTimeout: cfg.Upstream.RequestTimeout,
	}, breaker)

	// Zero spacing in configuration means no spacing; the limiter treats
	// zero as "use the default" and negative as disabled.
	spacing := cfg.Limiter.MinSpacing
	if spacing == 0 {
		spacing = -1
	}
	limiter := taste.NewRateLimiter(cfg.Limiter.MaxConcurrent, spacing)

	policy := &taste.RetryPolicy{
		MaxRetries:    cfg.Retry.MaxRetries,
		BaseDelay:     cfg.Retry.BaseDelay,
		MaxDelay:      cfg.Retry.MaxDelay,
		MaxJitter:     cfg.Retry.MaxJitter,
		MaxRetryAfter: cfg.Retry.MaxRetryAfter,
	}

	fetcher := taste.NewFetcher(client, cache.New(cfg.Cache.TTL), limiter, policy)

	return enrich.New(fetcher, enrich.Config{
		Categories:      cfg.Enrich.Categories,
		ResultCount:     cfg.Enrich.ResultCount,
		MaxInterestTags: cfg.Enrich.MaxInterestTags,
		BatchSize:       cfg.Enrich.BatchSize,
		BatchDelay:      cfg.Enrich.BatchDelay,
	})
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
