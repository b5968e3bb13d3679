// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package taste

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/tomtom215/tasteprofile/internal/fallback"
	"github.com/tomtom215/tasteprofile/internal/models"
)

// Query parameters understood by the insights endpoint.
const (
	ParamFilterType = "filter.type"
	ParamTake       = "take"
	ParamAudience   = "signal.demographics.audiences"
	ParamLocation   = "signal.location.query"
	ParamInterest   = "signal.interests.tags"
)

// signalParams maps each signal key to the query parameter that carries it.
var signalParams = map[string]string{
	models.SignalAudience: ParamAudience,
	models.SignalLocation: ParamLocation,
	models.SignalInterest: ParamInterest,
}

// Category describes one queryable entity class and the signals the
// upstream accepts for it.
type Category struct {
	Name       string
	EntityType string
	allowed    map[string]bool
}

// Allows reports whether the category accepts signal.
func (c Category) Allows(signal string) bool {
	return c.allowed[signal]
}

// AllowedSignals returns the accepted signal keys in a fixed order.
func (c Category) AllowedSignals() []string {
	out := make([]string, 0, len(c.allowed))
	for _, s := range []string{models.SignalAudience, models.SignalLocation, models.SignalInterest} {
		if c.allowed[s] {
			out = append(out, s)
		}
	}
	return out
}

// Signature builds the query signature for signals, dropping every signal
// the category does not accept. The signature is exactly what gets sent.
func (c Category) Signature(signals models.SignalSet, resultCount int) models.QuerySignature {
	sig := models.QuerySignature{Category: c.Name, ResultCount: resultCount}
	if c.Allows(models.SignalAudience) {
		sig.Audience = signals.Get(models.SignalAudience)
	}
	if c.Allows(models.SignalLocation) {
		sig.Location = signals.Get(models.SignalLocation)
	}
	if c.Allows(models.SignalInterest) {
		sig.Interest = signals.Get(models.SignalInterest)
	}
	return sig
}

// Query encodes sig as insights query parameters.
//
// A signature carrying a signal outside the category's allow-list is a
// programming error and yields ErrParamNotAllowed before any request is made.
func (c Category) Query(sig models.QuerySignature) (url.Values, error) {
	if sig.Category != c.Name {
		return nil, fmt.Errorf("%w: signature for %q used with category %q", ErrParamNotAllowed, sig.Category, c.Name)
	}
	q := url.Values{}
	q.Set(ParamFilterType, c.EntityType)
	q.Set(ParamTake, strconv.Itoa(sig.ResultCount))

	for _, kv := range []struct{ signal, value string }{
		{models.SignalAudience, sig.Audience},
		{models.SignalLocation, sig.Location},
		{models.SignalInterest, sig.Interest},
	} {
		if kv.value == "" {
			continue
		}
		if !c.Allows(kv.signal) {
			return nil, fmt.Errorf("%w: %s for category %s", ErrParamNotAllowed, signalParams[kv.signal], c.Name)
		}
		q.Set(signalParams[kv.signal], kv.value)
	}
	return q, nil
}

func newCategory(name, entityType string, signals ...string) Category {
	allowed := make(map[string]bool, len(signals))
	for _, s := range signals {
		allowed[s] = true
	}
	return Category{Name: name, EntityType: entityType, allowed: allowed}
}

const (
	sigA = models.SignalAudience
	sigL = models.SignalLocation
	sigI = models.SignalInterest
)

// registry lists every category the upstream is queried for.
var registry = map[string]Category{
	fallback.CategoryMusic:       newCategory(fallback.CategoryMusic, "urn:entity:artist", sigA, sigL, sigI),
	fallback.CategoryMovie:       newCategory(fallback.CategoryMovie, "urn:entity:movie", sigA, sigI),
	fallback.CategoryTVShow:      newCategory(fallback.CategoryTVShow, "urn:entity:tv_show", sigA, sigI),
	fallback.CategoryBook:        newCategory(fallback.CategoryBook, "urn:entity:book", sigA, sigI),
	fallback.CategoryBrand:       newCategory(fallback.CategoryBrand, "urn:entity:brand", sigA, sigL, sigI),
	fallback.CategoryPodcast:     newCategory(fallback.CategoryPodcast, "urn:entity:podcast", sigI),
	fallback.CategoryVideoGame:   newCategory(fallback.CategoryVideoGame, "urn:entity:videogame", sigA, sigI),
	fallback.CategoryDestination: newCategory(fallback.CategoryDestination, "urn:entity:destination", sigA, sigI),
	fallback.CategoryRestaurant:  newCategory(fallback.CategoryRestaurant, "urn:entity:place", sigL, sigI),
	fallback.CategoryInfluencer:  newCategory(fallback.CategoryInfluencer, "urn:entity:person", sigA, sigI),
}

// Lookup returns the category registered under name.
func Lookup(name string) (Category, bool) {
	c, ok := registry[name]
	return c, ok
}
