// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeByThree = `[[1.0, 0.2, 0.9], [0.2, 1.0, 0.1], [0.9, 0.1, 1.0]]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_JSONRecords(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	paths := Paths{
		Catalog: writeFile(t, dir, "movies.json",
			`[{"movie_id": 19995, "title": "Avatar"}, {"movie_id": null, "title": "Spectre"}, {"movie_id": 49026.0, "title": "The Dark Knight Rises", "genres": "Action"}]`),
		Similarity: writeFile(t, dir, "similarity.json", threeByThree),
	}

	model, err := Load(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, 3, model.Catalog.Len())
	assert.Equal(t, 3, model.Matrix.Size())
	assert.Equal(t, Movie{Index: 0, ID: 19995, HasID: true, Title: "Avatar"}, model.Catalog.At(0))
	assert.False(t, model.Catalog.At(1).HasID)
	assert.Equal(t, int64(49026), model.Catalog.At(2).ID)
}

func TestLoad_JSONColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		catalog string
	}{
		{"arrays", `{"movie_id": [1, 2, 3], "title": ["A", "B", "C"]}`},
		{"pandas maps", `{"movie_id": {"2": 3, "0": 1, "1": 2}, "title": {"0": "A", "1": "B", "2": "C"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			model, err := Load(context.Background(), Paths{
				Catalog:    writeFile(t, dir, "movies.json", tt.catalog),
				Similarity: writeFile(t, dir, "similarity.json", threeByThree),
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "B", "C"}, model.Catalog.Titles())
			assert.Equal(t, int64(3), model.Catalog.At(2).ID)
		})
	}
}

func TestLoad_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		catalog    string // file content, or "" to skip creating it
		catalogExt string
		similarity string
		simExt     string
		wantKind   error
	}{
		{
			name:       "missing catalog file",
			similarity: threeByThree,
			catalogExt: ".json",
			simExt:     ".json",
			wantKind:   ErrMissingArtifact,
		},
		{
			name:       "catalog is a scalar",
			catalog:    `"movies"`,
			catalogExt: ".json",
			similarity: threeByThree,
			simExt:     ".json",
			wantKind:   ErrBadCatalog,
		},
		{
			name:       "movie_id column missing",
			catalog:    `[{"id": 1, "title": "A"}]`,
			catalogExt: ".json",
			similarity: `[[1.0]]`,
			simExt:     ".json",
			wantKind:   ErrMissingColumn,
		},
		{
			name:       "title column missing",
			catalog:    `{"movie_id": [1]}`,
			catalogExt: ".json",
			similarity: `[[1.0]]`,
			simExt:     ".json",
			wantKind:   ErrMissingColumn,
		},
		{
			name:       "fractional movie_id",
			catalog:    `[{"movie_id": 1.5, "title": "A"}]`,
			catalogExt: ".json",
			similarity: `[[1.0]]`,
			simExt:     ".json",
			wantKind:   ErrBadCatalog,
		},
		{
			name:       "empty catalog",
			catalog:    `[]`,
			catalogExt: ".json",
			similarity: `[]`,
			simExt:     ".json",
			wantKind:   ErrBadCatalog,
		},
		{
			name:       "matrix not numeric",
			catalog:    `[{"movie_id": 1, "title": "A"}]`,
			catalogExt: ".json",
			similarity: `{"a": 1}`,
			simExt:     ".json",
			wantKind:   ErrBadMatrix,
		},
		{
			name:       "matrix ragged",
			catalog:    `[{"movie_id": 1, "title": "A"}, {"movie_id": 2, "title": "B"}]`,
			catalogExt: ".json",
			similarity: `[[1.0, 0.5], [0.5]]`,
			simExt:     ".json",
			wantKind:   ErrBadMatrix,
		},
		{
			name:       "shape mismatch",
			catalog:    `[{"movie_id": 1, "title": "A"}, {"movie_id": 2, "title": "B"}]`,
			catalogExt: ".json",
			similarity: threeByThree,
			simExt:     ".json",
			wantKind:   ErrShapeMismatch,
		},
		{
			name:       "unsupported catalog format",
			catalog:    `binary`,
			catalogExt: ".pkl",
			similarity: threeByThree,
			simExt:     ".json",
			wantKind:   ErrUnsupportedFormat,
		},
		{
			name:       "unsupported matrix format",
			catalog:    `[{"movie_id": 1, "title": "A"}]`,
			catalogExt: ".json",
			similarity: `binary`,
			simExt:     ".pkl",
			wantKind:   ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()

			paths := Paths{
				Catalog:    filepath.Join(dir, "movies"+tt.catalogExt),
				Similarity: writeFile(t, dir, "similarity"+tt.simExt, tt.similarity),
			}
			if tt.catalog != "" {
				writeFile(t, dir, "movies"+tt.catalogExt, tt.catalog)
			}

			model, err := Load(context.Background(), paths)
			require.Error(t, err)
			assert.Nil(t, model)
			assert.True(t, errors.Is(err, tt.wantKind), "error %v is not %v", err, tt.wantKind)

			var sde *StartupDataError
			require.True(t, errors.As(err, &sde))
			assert.NotEmpty(t, sde.Path)
		})
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), Paths{})
	assert.True(t, errors.Is(err, ErrMissingArtifact))
}
