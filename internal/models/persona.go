// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package models

import "time"

// PersonaProfile is the loosely-structured input to one enrichment call.
// It is treated as immutable once handed to the enricher.
type PersonaProfile struct {
	Age        int      `json:"age" validate:"gte=0,lte=130"`
	Occupation string   `json:"occupation,omitempty" validate:"max=200"`
	Location   string   `json:"location,omitempty" validate:"max=200"`
	Interests  []string `json:"interests,omitempty" validate:"max=50,dive,max=200"`
	Values     []string `json:"values,omitempty" validate:"max=50,dive,max=200"`
}

// PersonaRecord is the shape exchanged with the persona-generation pipeline.
// Attributes carries the non-cultural parts of the persona untouched.
type PersonaRecord struct {
	ID         string                 `json:"id,omitempty" validate:"max=128"`
	Name       string                 `json:"name,omitempty" validate:"max=200"`
	Profile    PersonaProfile         `json:"profile"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Cultural   *EnrichedProfile       `json:"cultural_data,omitempty"`
}

// EnrichedProfile aggregates one CategoryResult per requested category.
//
// CategoryOrder preserves the order categories were requested in, since
// Categories is a map. Degraded is true when every category came from
// static fallback data.
type EnrichedProfile struct {
	Categories      map[string]CategoryResult `json:"categories"`
	CategoryOrder   []string                  `json:"category_order"`
	SocialPlatforms []string                  `json:"social_platforms"`
	Signals         SignalSet                 `json:"signals"`
	Degraded        bool                      `json:"degraded"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// CountBySource returns how many categories were served from each source.
func (p *EnrichedProfile) CountBySource() map[Source]int {
	counts := make(map[Source]int, 3)
	for _, r := range p.Categories {
		counts[r.Source]++
	}
	return counts
}
