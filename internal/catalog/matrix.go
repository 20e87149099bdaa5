// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"fmt"
	"math"
)

// SimilarityMatrix is a dense n×n grid of similarity scores stored row-major.
// Entry (i, j) scores catalog row i against row j. Symmetry is expected but
// not enforced.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// NewSimilarityMatrix copies rows into a dense matrix.
// Every row must have exactly len(rows) finite values.
func NewSimilarityMatrix(rows [][]float64) (*SimilarityMatrix, error) {
	n := len(rows)
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return newDenseMatrix(n, data)
}

// newDenseMatrix takes ownership of data, which must hold n*n values.
func newDenseMatrix(n int, data []float64) (*SimilarityMatrix, error) {
	if n < 0 || len(data) != n*n {
		return nil, fmt.Errorf("expected %d values for a %dx%d matrix, got %d", n*n, n, n, len(data))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite score at (%d, %d)", i/n, i%n)
		}
	}
	return &SimilarityMatrix{n: n, data: data}, nil
}

// Size returns the number of rows (and columns).
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// Row returns row i. The slice aliases the matrix and must not be modified.
func (m *SimilarityMatrix) Row(i int) []float64 {
	start := i * m.n
	end := start + m.n
	return m.data[start:end:end]
}

// At returns entry (i, j).
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}
