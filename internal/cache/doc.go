// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package cache provides the in-memory response cache for recommendation API
results.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live expiration, checked lazily on Get
  - Keys derived from models.QuerySignature, so equivalent queries share an entry
  - Defensive copies of item slices on Put and Get
  - Hit, miss and eviction counters mirrored to Prometheus

The cache lives for the life of the process and is never persisted.

# Usage Example

	c := cache.New(5 * time.Minute)

	c.Put(sig, []string{"Daft Punk", "Air"})

	if items, ok := c.Get(sig); ok {
	    // serve items with source=cache
	}
*/
package cache
