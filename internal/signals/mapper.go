// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package signals

import (
	"strings"

	"github.com/tomtom215/tasteprofile/internal/models"
)

// DefaultMaxInterestTags caps the interest-tag signal when no limit is set.
const DefaultMaxInterestTags = 6

// Tier reports which resolution step matched a phrase.
type Tier int

const (
	TierExact Tier = iota
	TierKeyword
	TierPattern
	TierDefault
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierKeyword:
		return "keyword"
	case TierPattern:
		return "pattern"
	default:
		return "default"
	}
}

// Mapper turns a persona profile into the signals sent upstream.
// It holds no mutable state and is safe for concurrent use.
type Mapper struct {
	maxTags int
}

// NewMapper returns a Mapper capping interest tags at maxTags.
func NewMapper(maxTags int) *Mapper {
	if maxTags <= 0 {
		maxTags = DefaultMaxInterestTags
	}
	return &Mapper{maxTags: maxTags}
}

// Map derives the SignalSet for p. Identical profiles always produce
// identical signal sets.
func (m *Mapper) Map(p models.PersonaProfile) models.SignalSet {
	set := models.SignalSet{
		models.SignalAudience: AudienceForAge(p.Age),
	}
	if loc := MapLocation(p.Location); loc != "" {
		set[models.SignalLocation] = loc
	}

	var tags tagList
	for _, interest := range p.Interests {
		t, _ := ResolveInterest(interest)
		tags.add(t)
	}
	for _, value := range p.Values {
		t, _ := ResolveValue(value)
		tags.add(t)
	}
	// Occupation only contributes on a keyword hit; job titles are too
	// varied for the pattern tier to say anything useful.
	if t, ok := matchKeyword(Fold(p.Occupation)); ok {
		tags.add(t)
	}
	if len(tags) == 0 {
		tags.add(DefaultInterest)
	}
	if len(tags) > m.maxTags {
		tags = tags[:m.maxTags]
	}
	set[models.SignalInterest] = strings.Join(tags, ",")
	return set
}

// AudienceForAge returns the audience band for age.
func AudienceForAge(age int) string {
	for _, band := range ageBands {
		if age <= band.maxAge {
			return band.audience
		}
	}
	return AudienceBoomers
}

// MapLocation returns the region code for a known city, otherwise the
// trimmed input. "Lyon, France" resolves through its first segment.
func MapLocation(location string) string {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return ""
	}
	folded := Fold(trimmed)
	if code, ok := cityTable[folded]; ok {
		return code
	}
	if head, _, found := strings.Cut(folded, ","); found {
		if code, ok := cityTable[strings.TrimSpace(head)]; ok {
			return code
		}
	}
	return trimmed
}

// ResolveInterest resolves one free-text interest to comma-separated tags.
func ResolveInterest(text string) (string, Tier) {
	return resolve(text, interestTable, valuesTable)
}

// ResolveValue resolves one personal value to comma-separated tags.
func ResolveValue(text string) (string, Tier) {
	return resolve(text, valuesTable, interestTable)
}

func resolve(text string, primary, secondary map[string]string) (string, Tier) {
	folded := Fold(text)
	if folded == "" {
		return DefaultInterest, TierDefault
	}
	if tags, ok := primary[folded]; ok {
		return tags, TierExact
	}
	if tags, ok := secondary[folded]; ok {
		return tags, TierExact
	}
	if tags, ok := matchKeyword(folded); ok {
		return tags, TierKeyword
	}
	for _, rule := range patternTable {
		if rule.re.MatchString(folded) {
			return rule.tags, TierPattern
		}
	}
	return DefaultInterest, TierDefault
}

func matchKeyword(folded string) (string, bool) {
	if folded == "" {
		return "", false
	}
	for _, rule := range keywordTable {
		for _, kw := range rule.keywords {
			if containsAtWordStart(folded, kw) {
				return rule.tags, true
			}
		}
	}
	return "", false
}

// tagList is an insertion-ordered set of tags.
type tagList []string

func (l *tagList) add(commaSeparated string) {
	for _, tag := range strings.Split(commaSeparated, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || l.has(tag) {
			continue
		}
		*l = append(*l, tag)
	}
}

func (l tagList) has(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}
	return false
}
