// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tasteprofile/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := logging.Logger()
	prevLevel := zerolog.GlobalLevel()
	var buf bytes.Buffer
	// Successful requests are logged at debug.
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() {
		logging.SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestAccessLog_Fields(t *testing.T) {
	buf := captureLogs(t)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(time.Minute))
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/things/7", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := lastLogLine(t, buf)
	checks := map[string]interface{}{
		"level":      "debug",
		"method":     "GET",
		"route":      "/things/{id}",
		"status":     float64(200),
		"bytes":      float64(5),
		"request_id": "req-1",
		"slow":       false,
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s = %v, want %v", k, entry[k], want)
		}
	}
}

func TestAccessLog_Levels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		delay     time.Duration
		threshold time.Duration
		wantLevel string
	}{
		{"ok", http.StatusOK, 0, time.Minute, "debug"},
		{"client error", http.StatusBadRequest, 0, time.Minute, "debug"},
		{"server error", http.StatusInternalServerError, 0, time.Minute, "error"},
		{"slow", http.StatusOK, 20 * time.Millisecond, time.Millisecond, "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := AccessLog(tt.threshold)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			if got := lastLogLine(t, buf)["level"]; got != tt.wantLevel {
				t.Errorf("level = %v, want %s", got, tt.wantLevel)
			}
		})
	}
}
