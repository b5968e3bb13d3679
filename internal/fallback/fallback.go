// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package fallback

// Synthesize returns the curated items for category.
//
// The slice is a fresh copy on every call. Unknown categories return an
// empty, non-nil slice.
func Synthesize(category string) []string {
	items, ok := curated[category]
	if !ok {
		return []string{}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Known reports whether category has curated fallback data.
func Known(category string) bool {
	_, ok := curated[category]
	return ok
}

// Categories returns every recognized category in canonical order.
func Categories() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
