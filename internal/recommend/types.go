// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "fmt"

// Recommendation is one neighbour of the queried title.
type Recommendation struct {
	// Rank is the 1-based position in the result.
	Rank int `json:"rank"`

	// Index is the catalog row of the neighbour.
	Index int `json:"index"`

	// MovieID is the TMDB id used to fetch the poster.
	MovieID int64 `json:"movie_id"`

	// Title is the neighbour's display title.
	Title string `json:"title"`

	// Score is the similarity value from the queried row.
	Score float64 `json:"score"`
}

// WarningKind classifies a non-fatal data problem found during a lookup.
type WarningKind string

// WarningMissingMovieID is raised when a neighbour has no movie_id and is skipped.
const WarningMissingMovieID WarningKind = "missing_movie_id"

// Warning reports a neighbour that was dropped from the result.
// The result is not padded back to K when this happens.
type Warning struct {
	Kind  WarningKind `json:"kind"`
	Index int         `json:"index"`
	Title string      `json:"title"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: row %d (%q) skipped", w.Kind, w.Index, w.Title)
}

// Result is the full outcome of a similarity lookup.
type Result struct {
	// Title echoes the queried title.
	Title string `json:"title"`

	// Found is false when the title is not in the catalog.
	Found bool `json:"found"`

	// Recommendations are in descending score order. Never nil.
	Recommendations []Recommendation `json:"recommendations"`

	// Warnings lists neighbours skipped for data integrity problems.
	Warnings []Warning `json:"warnings,omitempty"`
}

// Names returns the recommended titles in rank order.
func (r Result) Names() []string {
	names := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		names[i] = rec.Title
	}
	return names
}

// MovieIDs returns the recommended movie ids, aligned with Names.
func (r Result) MovieIDs() []int64 {
	ids := make([]int64, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		ids[i] = rec.MovieID
	}
	return ids
}

// Metrics tracks engine activity since construction.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	FoundCount   int64 `json:"found_count"`
	MissCount    int64 `json:"miss_count"`
	SkippedCount int64 `json:"skipped_count"`
}
