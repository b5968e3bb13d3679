// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/tasteprofile/internal/logging"
)

var (
	// ErrNotConfigured means no API key was provided. Every fetch falls
	// back without attempting a request.
	ErrNotConfigured = errors.New("taste: upstream API key not configured")

	// ErrParamNotAllowed means a query carried a signal its category does
	// not accept. It is never retried.
	ErrParamNotAllowed = errors.New("taste: parameter not allowed for category")

	// errLimiter wraps failures to obtain an upstream permit.
	errLimiter = errors.New("taste: upstream permit unavailable")
)

// Kind classifies an upstream failure.
type Kind int

const (
	KindTransient Kind = iota
	KindRateLimited
	KindAuth
	KindRequestShape
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAuth:
		return "auth"
	case KindRequestShape:
		return "request_shape"
	default:
		return "transient"
	}
}

// UpstreamError is a failed call to the recommendation API.
type UpstreamError struct {
	Kind       Kind
	StatusCode int           // 0 for network failures
	RetryAfter time.Duration // server hint, only for KindRateLimited
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "taste upstream %s", e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	} else if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(logging.Truncate(e.Body, maxErrorMessageBody))
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request may succeed if repeated.
func (e *UpstreamError) Retryable() bool {
	return e.Kind == KindTransient || e.Kind == KindRateLimited
}

// shapeMarkers identify a 400 response rejecting the query shape rather
// than a malformed request.
var shapeMarkers = []string{"not supported", "unsupported", "not allowed", "invalid signal"}

// classifyResponse converts a non-2xx response into an UpstreamError.
func classifyResponse(status int, header http.Header, body []byte, now time.Time) *UpstreamError {
	e := &UpstreamError{
		Kind:       KindTransient,
		StatusCode: status,
		Body:       strings.TrimSpace(string(body)),
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		if d, ok := parseRetryAfter(header.Get("Retry-After"), now); ok {
			e.RetryAfter = d
		}
	case status == http.StatusBadRequest && isShapeRejection(body):
		e.Kind = KindRequestShape
	}
	return e
}

func isShapeRejection(body []byte) bool {
	lower := strings.ToLower(string(body))
	for _, m := range shapeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// parseRetryAfter accepts delay-seconds or an HTTP date (RFC 9110).
func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// maxErrorMessageBody caps the body excerpt included in Error().
const maxErrorMessageBody = 512

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads at most maxErrorBodySize bytes of r for error
// reporting and shape detection.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
