// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	_ "embed"
	"net/http"
	"strconv"
)

//go:embed assets/poster-placeholder.svg
var placeholderSVG []byte

// PlaceholderPath is where the placeholder poster is served. It matches
// poster.DefaultPlaceholderURL.
const PlaceholderPath = "/assets/poster-placeholder.svg"

// PosterPlaceholder serves the embedded placeholder poster.
func PosterPlaceholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(placeholderSVG)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(placeholderSVG)
}
