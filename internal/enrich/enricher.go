// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package enrich

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tasteprofile/internal/fallback"
	"github.com/tomtom215/tasteprofile/internal/logging"
	"github.com/tomtom215/tasteprofile/internal/metrics"
	"github.com/tomtom215/tasteprofile/internal/models"
	"github.com/tomtom215/tasteprofile/internal/signals"
	"github.com/tomtom215/tasteprofile/internal/taste"
)

// Batch defaults.
const (
	DefaultBatchSize  = 2
	DefaultBatchDelay = 500 * time.Millisecond
)

// Config controls which categories are fetched and how batches are paced.
type Config struct {
	Categories      []string
	ResultCount     int
	MaxInterestTags int
	BatchSize       int
	BatchDelay      time.Duration
}

// DefaultConfig fetches every known category.
func DefaultConfig() Config {
	return Config{
		Categories:      fallback.Categories(),
		ResultCount:     taste.DefaultResultCount,
		MaxInterestTags: signals.DefaultMaxInterestTags,
		BatchSize:       DefaultBatchSize,
		BatchDelay:      DefaultBatchDelay,
	}
}

// Enricher turns persona profiles into EnrichedProfiles. It never fails
// because of upstream trouble: every category degrades independently to
// fallback data.
type Enricher struct {
	mapper  *signals.Mapper
	fetcher *taste.Fetcher
	cfg     Config

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// New creates an enricher. Zero-valued config fields take their defaults.
func New(fetcher *taste.Fetcher, cfg Config) *Enricher {
	def := DefaultConfig()
	if len(cfg.Categories) == 0 {
		cfg.Categories = def.Categories
	}
	if cfg.ResultCount <= 0 {
		cfg.ResultCount = def.ResultCount
	}
	if cfg.MaxInterestTags <= 0 {
		cfg.MaxInterestTags = def.MaxInterestTags
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	}
	return &Enricher{
		mapper:  signals.NewMapper(cfg.MaxInterestTags),
		fetcher: fetcher,
		cfg:     cfg,
		sleep:   sleepContext,
		now:     time.Now,
	}
}

// Categories returns the categories fetched for every persona, in order.
func (e *Enricher) Categories() []string {
	out := make([]string, len(e.cfg.Categories))
	copy(out, e.cfg.Categories)
	return out
}

// Fetcher returns the underlying category fetcher.
func (e *Enricher) Fetcher() *taste.Fetcher {
	return e.fetcher
}

// EnrichOne maps the profile's signals once and fetches all categories
// concurrently.
func (e *Enricher) EnrichOne(ctx context.Context, profile models.PersonaProfile) *models.EnrichedProfile {
	start := e.now()
	sigs := e.mapper.Map(profile)

	results := make([]models.CategoryResult, len(e.cfg.Categories))
	var g errgroup.Group
	for i, category := range e.cfg.Categories {
		g.Go(func() error {
			results[i] = e.fetcher.Fetch(ctx, category, sigs, e.cfg.ResultCount)
			return nil
		})
	}
	_ = g.Wait() // fetches never fail

	out := &models.EnrichedProfile{
		Categories:    make(map[string]models.CategoryResult, len(results)),
		CategoryOrder: make([]string, 0, len(results)),
		Signals:       sigs,
		GeneratedAt:   start.UTC(),
	}
	fallbacks := 0
	for _, r := range results {
		if _, dup := out.Categories[r.Category]; !dup {
			out.CategoryOrder = append(out.CategoryOrder, r.Category)
		}
		out.Categories[r.Category] = r
		if r.Source == models.SourceFallback {
			fallbacks++
		}
	}
	out.Degraded = len(results) > 0 && fallbacks == len(results)

	var influencers []string
	if r, ok := out.Categories[fallback.CategoryInfluencer]; ok {
		influencers = r.Items
	}
	out.SocialPlatforms = signals.Platforms(sigs.Get(models.SignalAudience), sigs.InterestTags(), influencers)

	elapsed := e.now().Sub(start)
	metrics.RecordEnrichment(elapsed, out.Degraded)

	counts := out.CountBySource()
	logging.Ctx(ctx).Debug().
		Str("audience", sigs.Get(models.SignalAudience)).
		Int("live", counts[models.SourceLive]).
		Int("cache", counts[models.SourceCache]).
		Int("fallback", counts[models.SourceFallback]).
		Bool("degraded", out.Degraded).
		Dur("duration", elapsed).
		Msg("Persona enriched")

	return out
}

// EnrichMany enriches profiles in chunks of BatchSize. Profiles within a
// chunk run concurrently; chunks run one after another with BatchDelay
// between them. The output order matches the input order.
func (e *Enricher) EnrichMany(ctx context.Context, profiles []models.PersonaProfile) []*models.EnrichedProfile {
	out := make([]*models.EnrichedProfile, len(profiles))
	if len(profiles) == 0 {
		return out
	}
	metrics.EnrichBatchSize.Observe(float64(len(profiles)))

	for start := 0; start < len(profiles); start += e.cfg.BatchSize {
		if start > 0 && e.cfg.BatchDelay > 0 {
			// A cancelled context skips the pause; the fetches then fall
			// back without calling upstream.
			_ = e.sleep(ctx, e.cfg.BatchDelay)
		}
		end := min(start+e.cfg.BatchSize, len(profiles))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				out[i] = e.EnrichOne(ctx, profiles[i])
				return nil
			})
		}
		_ = g.Wait()
	}
	return out
}

// EnrichRecords enriches each record's profile and returns copies of the
// records with Cultural set. Input records are not modified.
func (e *Enricher) EnrichRecords(ctx context.Context, records []models.PersonaRecord) []models.PersonaRecord {
	profiles := make([]models.PersonaProfile, len(records))
	for i := range records {
		profiles[i] = records[i].Profile
	}
	enriched := e.EnrichMany(ctx, profiles)

	out := make([]models.PersonaRecord, len(records))
	for i := range records {
		out[i] = records[i]
		out[i].Cultural = enriched[i]
	}

	summary := Summarize(enriched)
	logging.Ctx(ctx).Info().
		Int("personas", summary.Personas).
		Int("live", summary.Live).
		Int("cache", summary.Cache).
		Int("fallback", summary.Fallback).
		Int("degraded", summary.Degraded).
		Msg("Batch enrichment complete")
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
