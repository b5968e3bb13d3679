// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tasteprofile/internal/logging"
	"github.com/tomtom215/tasteprofile/internal/metrics"
)

// BreakerConfig configures the circuit breaker in front of the upstream.
type BreakerConfig struct {
	Enabled      bool
	Name         string
	MaxRequests  uint32        // concurrent probes allowed when half-open
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open duration before probing
	MinRequests  uint32        // requests needed before the ratio is considered
	FailureRatio float64
}

// DefaultBreakerConfig mirrors the settings used for other HTTP upstreams:
// trip at 60% failures over at least 10 requests, probe after 2 minutes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:      true,
		Name:         "taste-api",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps upstream calls with circuit breaker protection. A nil
// Breaker passes calls straight through.
//
// The breaker measures upstream health, so rejected query shapes, missing
// parameters and caller cancellations do not count as failures.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker[[]string]
	name string
}

// NewBreaker returns nil when cfg is disabled.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = def.MinRequests
	}
	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		cfg.FailureRatio = def.FailureRatio
	}
	name := cfg.Name

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: countsAsHealthy,
	})

	return &Breaker{cb: cb, name: name}
}

// Execute runs fn through the breaker.
func (b *Breaker) Execute(fn func() ([]string, error)) ([]string, error) {
	if b == nil {
		return fn()
	}

	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Debug().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// Breaker states as reported by State.
const (
	BreakerStateClosed   = "closed"
	BreakerStateHalfOpen = "half-open"
	BreakerStateOpen     = "open"
	BreakerStateDisabled = "disabled"
)

// State returns the breaker state. A nil Breaker reports
// BreakerStateDisabled.
func (b *Breaker) State() string {
	if b == nil {
		return BreakerStateDisabled
	}
	return stateToString(b.cb.State())
}

func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrParamNotAllowed) || errors.Is(err, context.Canceled) {
		return true
	}
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Kind == KindRequestShape {
		return true
	}
	return false
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return BreakerStateClosed
	case gobreaker.StateHalfOpen:
		return BreakerStateHalfOpen
	case gobreaker.StateOpen:
		return BreakerStateOpen
	default:
		return "unknown"
	}
}
