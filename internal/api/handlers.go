// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/tasteprofile/internal/enrich"
	"github.com/tomtom215/tasteprofile/internal/fallback"
	"github.com/tomtom215/tasteprofile/internal/models"
	"github.com/tomtom215/tasteprofile/internal/taste"
	"github.com/tomtom215/tasteprofile/internal/validation"
)

// DefaultMaxBatchRecords caps a batch when HandlerConfig leaves it unset.
const DefaultMaxBatchRecords = 50

// HandlerConfig holds handler settings taken from configuration.
type HandlerConfig struct {
	MaxBatchRecords int
	Version         string
}

// Handler serves the enrichment API.
type Handler struct {
	enricher  *enrich.Enricher
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler around enricher.
func NewHandler(enricher *enrich.Enricher, cfg HandlerConfig) *Handler {
	if cfg.MaxBatchRecords <= 0 {
		cfg.MaxBatchRecords = DefaultMaxBatchRecords
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		enricher:  enricher,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Enrich handles POST /api/v1/enrich. The body is one PersonaRecord and the
// response is the same record with cultural_data set. Upstream failures
// degrade to fallback data and still return 200.
func (h *Handler) Enrich(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var record models.PersonaRecord
	if err := decodeJSON(w, r, maxRecordBodyBytes, &record); err != nil {
		writeDecodeError(rw, err)
		return
	}
	if verr := validation.ValidateStruct(&record); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	record.Cultural = nil

	out := h.enricher.EnrichRecords(r.Context(), []models.PersonaRecord{record})
	rw.Success(out[0])
}

// EnrichBatch handles POST /api/v1/enrich/batch.
func (h *Handler) EnrichBatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BatchRequest
	if err := decodeJSON(w, r, maxBatchBodyBytes, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	if len(req.Records) > h.config.MaxBatchRecords {
		rw.ValidationError(
			fmt.Sprintf("records must contain at most %d items", h.config.MaxBatchRecords),
			map[string]interface{}{"fields": []validation.FieldError{{
				Field:   "records",
				Tag:     "max",
				Param:   fmt.Sprint(h.config.MaxBatchRecords),
				Message: fmt.Sprintf("records must contain at most %d items", h.config.MaxBatchRecords),
			}}},
		)
		return
	}
	for i := range req.Records {
		req.Records[i].Cultural = nil
	}

	records := h.enricher.EnrichRecords(r.Context(), req.Records)
	rw.Success(BatchResponse{
		Records: records,
		Summary: enrich.SummarizeRecords(records),
	})
}

// Categories handles GET /api/v1/categories. Every known category is
// listed; Enabled marks the ones fetched for each persona.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	enabled := make(map[string]bool)
	for _, name := range h.enricher.Categories() {
		enabled[name] = true
	}

	known := fallback.Categories()
	out := make([]CategoryInfo, 0, len(known))
	for _, name := range known {
		cat, ok := taste.Lookup(name)
		if !ok {
			continue
		}
		out = append(out, CategoryInfo{
			Name:           cat.Name,
			EntityType:     cat.EntityType,
			AllowedSignals: cat.AllowedSignals(),
			Enabled:        enabled[name],
		})
	}
	NewResponseWriter(w, r).Success(out)
}
