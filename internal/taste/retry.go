// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Retry defaults.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 500 * time.Millisecond
	DefaultMaxDelay   = 8 * time.Second
	DefaultMaxJitter  = 250 * time.Millisecond

	// DefaultMaxRetryAfter is the longest server Retry-After hint waited
	// out. A longer hint ends the loop as exhausted.
	DefaultMaxRetryAfter = 30 * time.Second
)

// Outcome is the terminal state of a retry loop.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeExhausted
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "aborted"
	}
}

// RetryPolicy decides whether and how long to wait before repeating a
// failed upstream attempt.
//
// Sleep and Jitter are replaceable so tests can run without real waits.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxJitter  time.Duration

	// MaxRetryAfter caps server Retry-After hints; zero means
	// DefaultMaxRetryAfter.
	MaxRetryAfter time.Duration

	Sleep  func(ctx context.Context, d time.Duration) error
	Jitter func(max time.Duration) time.Duration
}

// DefaultRetryPolicy returns a policy allowing up to four attempts.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:    DefaultMaxRetries,
		BaseDelay:     DefaultBaseDelay,
		MaxDelay:      DefaultMaxDelay,
		MaxJitter:     DefaultMaxJitter,
		MaxRetryAfter: DefaultMaxRetryAfter,
	}
}

// Result carries the value of a retry loop together with how it ended.
// Waits records the delay chosen before each retry, in order.
type Result[T any] struct {
	Value    T
	Outcome  Outcome
	Attempts int
	Waits    []time.Duration
	LastErr  error
}

// Run calls fn until it succeeds, fails with a non-retryable error, or the
// retry budget is spent. It never panics and reports failure only through
// Result.Outcome.
//
// The attempt number passed to fn starts at zero.
func Run[T any](ctx context.Context, p *RetryPolicy, fn func(ctx context.Context, attempt int) (T, error)) Result[T] {
	if p == nil {
		p = DefaultRetryPolicy()
	}
	var res Result[T]

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			res.Outcome = OutcomeAborted
			if res.LastErr == nil {
				res.LastErr = err
			}
			return res
		}

		v, err := fn(ctx, attempt)
		res.Attempts++
		if err == nil {
			res.Value = v
			res.Outcome = OutcomeSuccess
			res.LastErr = nil
			return res
		}
		res.LastErr = err

		if ctx.Err() != nil || !IsRetryable(err) {
			res.Outcome = OutcomeAborted
			return res
		}
		if attempt >= p.MaxRetries || retryAfter(err) > p.maxRetryAfter() {
			res.Outcome = OutcomeExhausted
			return res
		}

		wait := p.Delay(attempt, err)
		res.Waits = append(res.Waits, wait)
		if err := p.sleep(ctx, wait); err != nil {
			res.Outcome = OutcomeAborted
			return res
		}
	}
}

// IsRetryable reports whether err may clear up on its own.
//
// Credentials, rejected query shapes, disallowed parameters, an open
// circuit and limiter failures are final. Every other error is treated as
// transient.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrParamNotAllowed),
		errors.Is(err, errLimiter),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Retryable()
	}
	return true
}

func (p *RetryPolicy) maxRetryAfter() time.Duration {
	if p.MaxRetryAfter <= 0 {
		return DefaultMaxRetryAfter
	}
	return p.MaxRetryAfter
}

// retryAfter returns the server's Retry-After hint carried by err, or 0.
func retryAfter(err error) time.Duration {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Kind == KindRateLimited {
		return ue.RetryAfter
	}
	return 0
}

// Delay returns the wait before the retry following a failed attempt.
// A server Retry-After hint wins over exponential backoff.
func (p *RetryPolicy) Delay(attempt int, err error) time.Duration {
	if hint := retryAfter(err); hint > 0 {
		return hint + p.jitter()
	}
	return p.Backoff(attempt) + p.jitter()
}

// Backoff returns BaseDelay * 2^attempt capped at MaxDelay, without jitter.
func (p *RetryPolicy) Backoff(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	limit := p.MaxDelay
	if limit <= 0 {
		limit = DefaultMaxDelay
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	if d > limit {
		return limit
	}
	return d
}

func (p *RetryPolicy) jitter() time.Duration {
	if p.MaxJitter <= 0 {
		return 0
	}
	if p.Jitter != nil {
		return p.Jitter(p.MaxJitter)
	}
	return time.Duration(rand.Int64N(int64(p.MaxJitter)))
}

func (p *RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
