// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package signals converts free-text persona attributes into the canonical
signals understood by the recommendation API.

Interests and values resolve through three tiers: an exact lookup in the
curated interest and values tables, an ordered keyword table, and suffix
patterns. A default bucket catches everything else, so every phrase resolves.
All matching is done on accent- and case-folded text (see Fold).

Age maps to one of four audience bands and known cities map to regional
codes. Platforms derives a short list of likely social platforms from the
audience band, the interest tags and the names of recommended influencers.

The package holds no mutable state; all functions are deterministic.
*/
package signals
