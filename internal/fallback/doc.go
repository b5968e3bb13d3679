// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

// Package fallback holds the static, curated per-category data served
// whenever live recommendations cannot be obtained.
package fallback
