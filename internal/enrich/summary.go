// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package enrich

import "github.com/tomtom215/tasteprofile/internal/models"

// Summary counts category sources across a batch. Degraded is the number
// of personas for which every category fell back.
type Summary struct {
	Personas int `json:"personas"`
	Live     int `json:"live"`
	Cache    int `json:"cache"`
	Fallback int `json:"fallback"`
	Degraded int `json:"degraded"`
}

// AllDegraded reports whether no persona received any live or cached data.
func (s Summary) AllDegraded() bool {
	return s.Personas > 0 && s.Degraded == s.Personas
}

// Summarize aggregates source counts over profiles. Nil entries are skipped.
func Summarize(profiles []*models.EnrichedProfile) Summary {
	var s Summary
	for _, p := range profiles {
		if p == nil {
			continue
		}
		s.Personas++
		counts := p.CountBySource()
		s.Live += counts[models.SourceLive]
		s.Cache += counts[models.SourceCache]
		s.Fallback += counts[models.SourceFallback]
		if p.Degraded {
			s.Degraded++
		}
	}
	return s
}

// SummarizeRecords is Summarize over the Cultural field of records.
func SummarizeRecords(records []models.PersonaRecord) Summary {
	profiles := make([]*models.EnrichedProfile, len(records))
	for i := range records {
		profiles[i] = records[i].Cultural
	}
	return Summarize(profiles)
}
