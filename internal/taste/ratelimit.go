// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tasteprofile/internal/metrics"
)

// Limiter defaults.
const (
	DefaultMaxConcurrent = 2
	DefaultMinSpacing    = 250 * time.Millisecond
)

// RateLimiter gates every upstream attempt.
//
// At most maxConcurrent permits are held at once, and consecutive permits
// start at least minSpacing apart across all categories. Safe for
// concurrent use.
type RateLimiter struct {
	sem      *semaphore.Weighted
	spacing  *rate.Limiter
	inFlight atomic.Int64
	max      int64
}

// Permit is held for the duration of one upstream attempt.
type Permit struct {
	Start    time.Time
	Waited   time.Duration
	released atomic.Bool
}

// NewRateLimiter creates a limiter. Non-positive arguments select the
// defaults; a negative minSpacing disables spacing.
func NewRateLimiter(maxConcurrent int, minSpacing time.Duration) *RateLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if minSpacing == 0 {
		minSpacing = DefaultMinSpacing
	}
	l := &RateLimiter{
		sem: semaphore.NewWeighted(int64(maxConcurrent)),
		max: int64(maxConcurrent),
	}
	if minSpacing > 0 {
		l.spacing = rate.NewLimiter(rate.Every(minSpacing), 1)
	}
	return l
}

// Acquire blocks until a permit is available or ctx is done.
func (l *RateLimiter) Acquire(ctx context.Context) (*Permit, error) {
	begin := time.Now()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", errLimiter, err)
	}
	if l.spacing != nil {
		if err := l.spacing.Wait(ctx); err != nil {
			l.sem.Release(1)
			return nil, fmt.Errorf("%w: %w", errLimiter, err)
		}
	}

	start := time.Now()
	p := &Permit{Start: start, Waited: start.Sub(begin)}
	metrics.RecordLimiterWait(p.Waited)
	metrics.LimiterInFlight.Set(float64(l.inFlight.Add(1)))
	return p, nil
}

// Release returns p to the limiter. Releasing the same permit twice, or a
// nil permit, is a no-op.
func (l *RateLimiter) Release(p *Permit) {
	if p == nil || !p.released.CompareAndSwap(false, true) {
		return
	}
	metrics.LimiterInFlight.Set(float64(l.inFlight.Add(-1)))
	l.sem.Release(1)
}

// InFlight returns the number of permits currently held.
func (l *RateLimiter) InFlight() int {
	return int(l.inFlight.Load())
}

// MaxConcurrent returns the permit cap.
func (l *RateLimiter) MaxConcurrent() int {
	return int(l.max)
}
