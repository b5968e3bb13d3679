// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

// Package logging provides the process-wide zerolog logger.
//
// # Overview
//
// The package provides:
//   - JSON output for production, console output for development
//   - Context-aware logging with request and correlation IDs
//   - An slog adapter so sutureslog writes through the same logger
//   - Helpers to redact API keys before they reach a log line
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("category", "music").Msg("Upstream configured")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Falling back to curated data")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// event is never written.
package logging
