// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package logging

import "strings"

// RedactSecret masks a credential for logging, keeping the first and last
// 4 characters of long values.
// Example: "qk_live_0123456789abcdef" -> "qk_l...cdef"
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 12 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// sensitiveKeys are field names whose values are always redacted.
var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"x-api-key":     true,
	"token":         true,
	"secret":        true,
	"password":      true,
	"authorization": true,
}

// RedactValue redacts value when key names a credential.
func RedactValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(strings.TrimSpace(key))] {
		return RedactSecret(value)
	}
	return value
}

// Truncate shortens s to at most maxLen bytes, marking the cut. Used for
// upstream response bodies in log lines.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
