// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tasteprofile/internal/enrich"
	"github.com/tomtom215/tasteprofile/internal/models"
	"github.com/tomtom215/tasteprofile/internal/validation"
)

// Request body limits.
const (
	maxRecordBodyBytes = 64 << 10
	maxBatchBodyBytes  = 4 << 20
)

// BatchRequest is the body of POST /api/v1/enrich/batch. The upper bound on
// Records comes from configuration and is checked by the handler.
type BatchRequest struct {
	Records []models.PersonaRecord `json:"records" validate:"required,min=1,dive"`
}

// BatchResponse pairs the enriched records with a source summary.
type BatchResponse struct {
	Records []models.PersonaRecord `json:"records"`
	Summary enrich.Summary         `json:"summary"`
}

// CategoryInfo describes one category in GET /api/v1/categories.
type CategoryInfo struct {
	Name           string   `json:"name"`
	EntityType     string   `json:"entity_type"`
	AllowedSignals []string `json:"allowed_signals"`
	Enabled        bool     `json:"enabled"`
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads the whole body and decodes it into dst. Bodies over
// limit fail with *http.MaxBytesError.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, dst)
}

// writeDecodeError maps a decodeJSON failure to a response.
func writeDecodeError(rw *ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	if errors.Is(err, errEmptyBody) {
		rw.BadRequest(err.Error())
		return
	}
	rw.BadRequest("invalid JSON: " + err.Error())
}

// writeValidationError writes a VALIDATION_FAILED response for verr.
func writeValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
}
