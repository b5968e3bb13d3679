// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package models

// Source tags where a CategoryResult's items came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Relevance scores. Live and cached results scale with how full the result
// set is relative to the requested count; fallback data is a fixed low score.
const (
	relevanceBase     = 60
	relevanceSpan     = 40
	RelevanceFallback = 30
)

// CategoryResult is the outcome of fetching one category for one persona.
// Items is never nil.
type CategoryResult struct {
	Category       string   `json:"category"`
	Items          []string `json:"items"`
	Source         Source   `json:"source"`
	RelevanceScore int      `json:"relevance_score"`
}

// NewCategoryResult builds a result and computes its relevance score.
func NewCategoryResult(category string, items []string, source Source, requested int) CategoryResult {
	if items == nil {
		items = []string{}
	}
	return CategoryResult{
		Category:       category,
		Items:          items,
		Source:         source,
		RelevanceScore: Relevance(source, len(items), requested),
	}
}

// Relevance returns a 0-100 score for a result of n items out of requested.
func Relevance(source Source, n, requested int) int {
	if n == 0 {
		return 0
	}
	if source == SourceFallback {
		return RelevanceFallback
	}
	if requested <= 0 {
		requested = n
	}
	score := relevanceBase + relevanceSpan*n/requested
	if score > 100 {
		score = 100
	}
	return score
}
