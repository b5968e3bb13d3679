// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package main is the tasteprofile server.

Startup sequence:

 1. Load configuration (defaults, optional config.yaml, environment)
 2. Initialize zerolog with the configured level and format
 3. Build the enrichment pipeline: cache, rate limiter, circuit breaker,
    upstream client, retry policy, fetcher and enricher
 4. Build the chi router and HTTP server
 5. Run the server under the suture supervisor tree until SIGINT or SIGTERM

A missing TASTE_API_KEY is not fatal. The server starts and every category
is answered from fallback data, which /api/v1/health reports as degraded.

Build with a version string:

	go build -ldflags "-X main.version=1.0.0" ./cmd/server
*/
package main
