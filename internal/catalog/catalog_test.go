// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"math"
	"testing"
)

func TestCatalog_IndexOf_FirstMatchWins(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Movie{
		{ID: 1, HasID: true, Title: "Heat"},
		{ID: 2, HasID: true, Title: "Alien"},
		{ID: 3, HasID: true, Title: "Heat"},
	})

	tests := []struct {
		title string
		want  int
		found bool
	}{
		{"Heat", 0, true},
		{"Alien", 1, true},
		{"heat", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := c.IndexOf(tt.title)
			if ok != tt.found {
				t.Fatalf("IndexOf(%q) found = %v, want %v", tt.title, ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("IndexOf(%q) = %d, want %d", tt.title, got, tt.want)
			}
		})
	}
}

func TestCatalog_TitlesKeepsOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Movie{{Title: "B"}, {Title: "A"}, {Title: "B"}})
	got := c.Titles()
	want := []string{"B", "A", "B"}

	if len(got) != len(want) {
		t.Fatalf("Titles() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Titles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if c.At(2).Index != 2 {
		t.Errorf("At(2).Index = %d, want 2", c.At(2).Index)
	}
}

func TestCatalog_MissingIDs(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Movie{{ID: 1, HasID: true, Title: "A"}, {Title: "B"}})
	if got := c.MissingIDs(); got != 1 {
		t.Errorf("MissingIDs() = %d, want 1", got)
	}
}

func TestNewSimilarityMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    [][]float64
		wantErr bool
	}{
		{"square", [][]float64{{1, 0.2}, {0.2, 1}}, false},
		{"empty", [][]float64{}, false},
		{"ragged", [][]float64{{1, 0.2}, {0.2}}, true},
		{"not square", [][]float64{{1, 0.2, 0.3}, {0.2, 1, 0.4}}, true},
		{"nan", [][]float64{{1, math.NaN()}, {0.2, 1}}, true},
		{"inf", [][]float64{{1, 0}, {math.Inf(1), 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimilarityMatrix(tt.rows)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSimilarityMatrix() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSimilarityMatrix_RowAndAt(t *testing.T) {
	t.Parallel()

	m, err := NewSimilarityMatrix([][]float64{
		{1.0, 0.2, 0.9},
		{0.2, 1.0, 0.1},
		{0.9, 0.1, 1.0},
	})
	if err != nil {
		t.Fatalf("NewSimilarityMatrix() error = %v", err)
	}

	row := m.Row(2)
	if len(row) != 3 || row[0] != 0.9 || row[2] != 1.0 {
		t.Errorf("Row(2) = %v", row)
	}
	if cap(row) != 3 {
		t.Errorf("Row(2) cap = %d, want 3", cap(row))
	}
	if m.At(1, 2) != 0.1 {
		t.Errorf("At(1,2) = %v, want 0.1", m.At(1, 2))
	}
}

func TestNewModel_ShapeMismatch(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Movie{{Title: "A"}, {Title: "B"}, {Title: "C"}})
	m, _ := NewSimilarityMatrix([][]float64{{1, 0}, {0, 1}})

	_, err := NewModel(c, m)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("NewModel() error = %v, want ErrShapeMismatch", err)
	}

	var sde *StartupDataError
	if !errors.As(err, &sde) {
		t.Fatalf("NewModel() error is not a *StartupDataError: %T", err)
	}
}
