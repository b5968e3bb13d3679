// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package signals

import "strings"

// Platforms derives the social platforms a persona is likely to use.
//
// Evidence is applied from most to least specific: platforms hinted by
// influencer names, then platforms tied to interest tags, then the base
// list for the audience band. At least one slot is kept for the audience
// band, so the result is never empty. Capped at MaxPlatforms.
func Platforms(audience string, interestTags, influencers []string) []string {
	out := make([]string, 0, MaxPlatforms)
	seen := make(map[string]struct{}, MaxPlatforms)
	add := func(platform string, limit int) {
		if len(out) >= limit {
			return
		}
		if _, dup := seen[platform]; dup {
			return
		}
		seen[platform] = struct{}{}
		out = append(out, platform)
	}

	for _, name := range influencers {
		if p, ok := classifyInfluencer(name); ok {
			add(p, MaxPlatforms-1)
		}
	}
	for _, tag := range interestTags {
		for _, p := range tagPlatforms[Fold(tag)] {
			add(p, MaxPlatforms-1)
		}
	}

	base, ok := audiencePlatforms[audience]
	if !ok {
		base = defaultPlatforms
	}
	for _, p := range base {
		add(p, MaxPlatforms)
	}
	return out
}

// classifyInfluencer guesses an influencer's home platform from their name.
// Keywords longer than three letters match anywhere ("LeaTube"); shorter
// ones only at a word start.
func classifyInfluencer(name string) (string, bool) {
	folded := Fold(name)
	if folded == "" {
		return "", false
	}
	for _, rule := range influencerTable {
		for _, kw := range rule.keywords {
			if containsAtWordStart(folded, kw) || (len(kw) > 3 && strings.Contains(folded, kw)) {
				return rule.platform, true
			}
		}
	}
	return "", false
}
