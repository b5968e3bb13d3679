// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package signals

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s, strips diacritics and collapses whitespace so that
// "Cinéma ", "cinema" and "CINÉMA" compare equal.
func Fold(s string) string {
	// transform.Chain keeps state, so it is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// containsAtWordStart reports whether keyword occurs in text at the start of
// a word. Plain substring matching lets "art" match inside "startup".
func containsAtWordStart(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return false
		}
		pos := offset + idx
		if pos == 0 || !isWordByte(text[pos-1]) {
			return true
		}
		offset = pos + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 0x80
}
