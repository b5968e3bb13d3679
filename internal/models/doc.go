// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

/*
Package models defines the data structures shared by the enrichment pipeline.

Key Components:

  - PersonaProfile: age, occupation, location, interests and values of one persona
  - PersonaRecord: a persona as exchanged with the persona-generation pipeline
  - SignalSet: canonical query signals derived from a profile
  - QuerySignature: cache key for one upstream query
  - CategoryResult: items for one category plus their source and relevance
  - EnrichedProfile: all category results for one persona

Thread Safety:

Values are created fresh per enrichment call and are not mutated after they are
returned, so they can be read concurrently.
*/
package models
