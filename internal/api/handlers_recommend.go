// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// TitlesResponse lists every selectable title in catalog order.
type TitlesResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

type recommendationsQuery struct {
	Title string `query:"title" validate:"required,notblank,max=512"`
}

// Titles handles GET /api/v1/titles.
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	titles := h.lookup.Titles()
	if titles == nil {
		titles = []string{}
	}
	NewResponseWriter(w, r).Success(TitlesResponse{Titles: titles, Count: len(titles)})
}

// Recommendations handles GET /api/v1/recommendations?title=...
//
// An unknown title is not an error: the response is 200 with found=false
// and a message for the user.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query := recommendationsQuery{Title: r.URL.Query().Get("title")}
	if verr := validation.ValidateStruct(&query); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}

	result := h.lookup.Lookup(r.Context(), query.Title)

	event := logging.Ctx(r.Context()).Debug().
		Str("title", query.Title).
		Bool("found", result.Found).
		Int("picks", len(result.Picks))
	if len(result.Warnings) > 0 {
		event = event.Int("warnings", len(result.Warnings))
	}
	event.Msg("Recommendation lookup served")

	rw.Success(result)
}
