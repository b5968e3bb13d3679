// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package api exposes persona enrichment over HTTP using the chi router.

# Endpoints

	POST /api/v1/enrich         one PersonaRecord, returned with cultural_data
	POST /api/v1/enrich/batch   {"records":[...]}, returns records and a summary
	GET  /api/v1/categories     known categories and whether each is enabled
	GET  /api/v1/health         upstream, breaker and cache status
	GET  /api/v1/health/live    liveness probe
	GET  /metrics               Prometheus metrics

# Response Format

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Errors set success to false and carry error.code, error.message and
error.request_id. Input that breaks a validation rule yields 400
VALIDATION_FAILED with per-field details; undecodable JSON yields 400
BAD_REQUEST. Upstream trouble never produces an error status: enrichment
degrades to fallback data and the response reports it through each
category's source and the profile's degraded flag.

# Middleware

Global: request ID, real IP, access log, panic recovery and CORS. The
/api/v1 group adds per-IP rate limiting (go-chi/httprate), security
headers, Prometheus metrics and gzip. Health endpoints skip the rate
limiter so probes are never throttled.
*/
package api
