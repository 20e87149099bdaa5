// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import "fmt"

// Movie is one catalog row.
type Movie struct {
	// Index is the 0-based row position, shared with the similarity matrix.
	Index int `json:"index"`

	// ID is the TMDB movie identifier. Only meaningful when HasID is true.
	ID int64 `json:"movie_id"`

	// HasID is false when the artifact holds a null movie_id for this row.
	HasID bool `json:"-"`

	// Title is the display title and the lookup key. Not guaranteed unique.
	Title string `json:"title"`
}

// Catalog is the ordered, immutable movie table.
type Catalog struct {
	movies  []Movie
	byTitle map[string]int
}

// NewCatalog builds a catalog from rows in matrix order.
// Row indexes are assigned from slice position; the first row for a
// repeated title is the one IndexOf returns.
func NewCatalog(movies []Movie) *Catalog {
	rows := make([]Movie, len(movies))
	byTitle := make(map[string]int, len(movies))

	for i, m := range movies {
		m.Index = i
		rows[i] = m
		if _, seen := byTitle[m.Title]; !seen {
			byTitle[m.Title] = i
		}
	}

	return &Catalog{movies: rows, byTitle: byTitle}
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// At returns the row at position i. It panics if i is out of range.
func (c *Catalog) At(i int) Movie {
	return c.movies[i]
}

// IndexOf returns the first row whose title equals title exactly.
func (c *Catalog) IndexOf(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// Contains reports whether title is in the catalog.
func (c *Catalog) Contains(title string) bool {
	_, ok := c.byTitle[title]
	return ok
}

// Titles returns every title in row order, duplicates included.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.movies))
	for i, m := range c.movies {
		titles[i] = m.Title
	}
	return titles
}

// MissingIDs returns how many rows have no movie_id.
func (c *Catalog) MissingIDs() int {
	n := 0
	for _, m := range c.movies {
		if !m.HasID {
			n++
		}
	}
	return n
}

// Model pairs a catalog with its similarity matrix.
// NewModel and Load are the only constructors, so every Model satisfies
// Matrix.Size() == Catalog.Len().
type Model struct {
	Catalog *Catalog
	Matrix  *SimilarityMatrix
}

// NewModel checks that the matrix covers exactly the catalog rows.
func NewModel(c *Catalog, m *SimilarityMatrix) (*Model, error) {
	if c == nil || m == nil {
		return nil, newStartupError(ErrShapeMismatch, "", fmt.Errorf("catalog and matrix are both required"))
	}
	if m.Size() != c.Len() {
		return nil, newStartupError(ErrShapeMismatch, "",
			fmt.Errorf("matrix is %dx%d but catalog has %d rows", m.Size(), m.Size(), c.Len()))
	}
	return &Model{Catalog: c, Matrix: m}, nil
}
