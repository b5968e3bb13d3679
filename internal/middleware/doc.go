// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware has the func(http.Handler) http.Handler shape used by chi:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - PrometheusMetrics: request counts, durations and in-flight gauge,
    labelled by chi route pattern
  - AccessLog: one structured log line per request, raised to warn for
    slow requests and to error for 5xx responses

Order matters. RequestID must run before AccessLog so log lines carry the
request ID:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
