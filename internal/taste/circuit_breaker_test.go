// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func testBreaker(name string) *Breaker {
	return NewBreaker(BreakerConfig{
		Enabled:      true,
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.6,
	})
}

func TestBreakerOpensOnTransientFailures(t *testing.T) {
	b := testBreaker("test-open")

	for i := 0; i < 3; i++ {
		_, _ = b.Execute(func() ([]string, error) { return nil, errTransient })
	}
	if b.State() != "open" {
		t.Fatalf("State() = %s, want open", b.State())
	}

	called := false
	_, err := b.Execute(func() ([]string, error) {
		called = true
		return []string{"x"}, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute() error = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("open breaker invoked the wrapped call")
	}
}

func TestBreakerIgnoresCallerFaults(t *testing.T) {
	b := testBreaker("test-ignore")
	faults := []error{
		&UpstreamError{Kind: KindRequestShape, StatusCode: 400},
		fmt.Errorf("query: %w", ErrParamNotAllowed),
		&UpstreamError{Kind: KindTransient, Err: context.Canceled},
	}
	for i := 0; i < 5; i++ {
		for _, e := range faults {
			_, _ = b.Execute(func() ([]string, error) { return nil, e })
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %s, want closed", b.State())
	}
}

func TestBreakerPassesResults(t *testing.T) {
	b := testBreaker("test-pass")
	got, err := b.Execute(func() ([]string, error) { return []string{"a", "b"}, nil })
	if err != nil || len(got) != 2 {
		t.Errorf("Execute() = %v, %v", got, err)
	}
}

func TestNilBreakerPassesThrough(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: false})
	if b != nil {
		t.Fatal("disabled config should return nil breaker")
	}
	got, err := b.Execute(func() ([]string, error) { return []string{"a"}, nil })
	if err != nil || len(got) != 1 {
		t.Errorf("Execute() = %v, %v", got, err)
	}
	if b.State() != "disabled" {
		t.Errorf("State() = %s, want disabled", b.State())
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %s, want %s", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}
