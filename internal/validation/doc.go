// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

// Package validation checks request bodies with go-playground/validator.
//
// One validator instance is shared by the process so struct metadata is
// parsed once. Rules live as validate tags on the models:
//
//	type PersonaProfile struct {
//	    Age       int      `json:"age" validate:"gte=0,lte=130"`
//	    Interests []string `json:"interests,omitempty" validate:"max=50,dive,max=200"`
//	}
//
// Failures are reported per field using the JSON path of the value, so a
// batch error reads "records[1].profile.age must be greater than or equal
// to 0". ToAPIError converts them to the VALIDATION_FAILED error payload:
//
//	if verr := validation.ValidateStruct(&record); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
