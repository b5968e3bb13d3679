// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tasteprofile/internal/logging"
)

// DefaultSlowRequestThreshold is the duration above which a request is
// logged at warn level.
const DefaultSlowRequestThreshold = 5 * time.Second

// AccessLog logs one line per request through the request's context
// logger, so request_id and correlation_id are included when RequestID runs
// first. Server errors and slow requests are logged at warn level and above.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			status := statusCode(ww)

			level := zerolog.DebugLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = zerolog.ErrorLevel
			case duration > slowThreshold:
				level = zerolog.WarnLevel
			}

			logging.Ctx(r.Context()).WithLevel(level).
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Bool("slow", duration > slowThreshold).
				Msg("HTTP request")
		})
	}
}
