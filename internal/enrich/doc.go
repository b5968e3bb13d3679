// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package enrich orchestrates persona enrichment.

EnrichOne maps a profile to signals once and fetches every configured
category concurrently, waiting for all of them. Each category degrades to
fallback data on its own, so a profile is always returned in full. When
every category fell back, the profile is marked Degraded.

EnrichMany paces batches: profiles are processed in chunks of BatchSize,
with BatchDelay between chunks. This is a coarser throttle on top of the
per-request rate limiter in package taste. Results keep the input order.

Summarize reports source counts for a batch so callers can tell a fully
degraded run from a healthy one.
*/
package enrich
