// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CSVCatalog(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	paths := Paths{
		Catalog: writeFile(t, dir, "movies.csv",
			"movie_id,title,tags\n19995,Avatar,action\n,\"O'Brother, Where Art Thou?\",comedy\n206647,Spectre,spy\n"),
		Similarity: writeFile(t, dir, "similarity.json", threeByThree),
	}

	model, err := Load(context.Background(), paths)
	require.NoError(t, err)

	require.Equal(t, 3, model.Catalog.Len())
	assert.Equal(t, int64(19995), model.Catalog.At(0).ID)
	assert.True(t, model.Catalog.At(0).HasID)
	assert.Equal(t, "O'Brother, Where Art Thou?", model.Catalog.At(1).Title)
	assert.False(t, model.Catalog.At(1).HasID)
	assert.Equal(t, "Spectre", model.Catalog.At(2).Title)
}

func TestLoad_CSVMissingColumn(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := Load(context.Background(), Paths{
		Catalog:    writeFile(t, dir, "movies.csv", "id,title\n1,A\n"),
		Similarity: writeFile(t, dir, "similarity.json", `[[1.0]]`),
	})
	assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "'/tmp/it''s.csv'", quoteLiteral("/tmp/it's.csv"))
}
