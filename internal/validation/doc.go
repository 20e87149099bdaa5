// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and reports failures as Errors,
// a slice of FieldError values that serialize directly into the details of
// a VALIDATION_ERROR response. The same
// validator checks HTTP query parameters and the loaded configuration.
//
// Field names in messages come from the first of the query, koanf or json
// struct tags that is set, so errors name the parameter a client actually
// sent.
//
// # Custom tags
//
//   - notblank: the string must contain a non-whitespace character.
//
// # Usage
//
//	type recommendationsQuery struct {
//	    Title string `query:"title" validate:"required,notblank,max=512"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    rw.ValidationError(verr.Error(), verr.Details())
//	    return
//	}
package validation
