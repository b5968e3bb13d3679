// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package models

import (
	"fmt"
	"strings"
)

// Signal keys. These are the only values ever derived from free text and
// sent to the recommendation API.
const (
	SignalAudience = "audience"
	SignalLocation = "location"
	SignalInterest = "interest-tag"
)

// SignalSet maps a signal key to its canonical value.
type SignalSet map[string]string

// Get returns the value for key or "" when absent.
func (s SignalSet) Get(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// InterestTags splits the interest-tag signal into its individual tags.
func (s SignalSet) InterestTags() []string {
	raw := s.Get(SignalInterest)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Clone returns an independent copy of the set.
func (s SignalSet) Clone() SignalSet {
	out := make(SignalSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// QuerySignature identifies one upstream query and is the response cache key.
type QuerySignature struct {
	Category    string
	Audience    string
	Location    string
	Interest    string
	ResultCount int
}

// Canonical returns the signature with every value lower-cased and trimmed.
func (q QuerySignature) Canonical() QuerySignature {
	return QuerySignature{
		Category:    canon(q.Category),
		Audience:    canon(q.Audience),
		Location:    canon(q.Location),
		Interest:    canon(q.Interest),
		ResultCount: q.ResultCount,
	}
}

// Key returns the canonical string form of the signature. Values are
// lower-cased and trimmed so cosmetic differences share a cache entry.
func (q QuerySignature) Key() string {
	return fmt.Sprintf("%s|a=%s|l=%s|i=%s|n=%d",
		canon(q.Category), canon(q.Audience), canon(q.Location), canon(q.Interest), q.ResultCount)
}

// Shape describes which signals a signature carries, ignoring their values.
// Request-shape rejections are logged once per shape.
func (q QuerySignature) Shape() string {
	var b strings.Builder
	b.WriteString(canon(q.Category))
	if q.Audience != "" {
		b.WriteString("+audience")
	}
	if q.Location != "" {
		b.WriteString("+location")
	}
	if q.Interest != "" {
		b.WriteString("+interest")
	}
	return b.String()
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
