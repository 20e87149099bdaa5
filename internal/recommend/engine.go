// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Engine answers nearest-neighbour lookups over a loaded model.
// It holds no mutable model state and is safe for concurrent use.
type Engine struct {
	model  *catalog.Model
	config *Config
	logger zerolog.Logger

	requestCount atomic.Int64
	foundCount   atomic.Int64
	missCount    atomic.Int64
	skippedCount atomic.Int64
}

// NewEngine creates a recommendation engine over model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(model *catalog.Model, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if model == nil || model.Catalog == nil || model.Matrix == nil {
		return nil, errors.New("model is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		model:  model,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend returns up to K similar titles and their movie ids, index aligned.
// An unknown title yields two empty slices.
func (e *Engine) Recommend(title string) ([]string, []int64) {
	res := e.Similar(context.Background(), title)
	return res.Names(), res.MovieIDs()
}

// Similar ranks the queried title's similarity row and returns the top K
// neighbours other than the title itself. Neighbours without a movie_id are
// skipped and reported as warnings.
func (e *Engine) Similar(ctx context.Context, title string) Result {
	start := time.Now()
	e.requestCount.Add(1)

	res := Result{Title: title, Recommendations: []Recommendation{}}

	row, ok := e.model.Catalog.IndexOf(title)
	if !ok {
		e.missCount.Add(1)
		metrics.RecordRecommendation(false, 0, time.Since(start))
		logging.ForComponent(ctx, "recommend").Debug().Str("title", title).Msg("title not in catalog")
		return res
	}
	res.Found = true

	for _, n := range topNeighbours(e.model.Matrix.Row(row), row, e.config.K) {
		movie := e.model.Catalog.At(n.index)
		if !movie.HasID {
			w := Warning{Kind: WarningMissingMovieID, Index: n.index, Title: movie.Title}
			res.Warnings = append(res.Warnings, w)
			e.logger.Warn().
				Int("index", n.index).
				Str("title", movie.Title).
				Str("query", title).
				Msg("Missing movie_id, skipping neighbour")
			continue
		}
		res.Recommendations = append(res.Recommendations, Recommendation{
			Rank:    len(res.Recommendations) + 1,
			Index:   n.index,
			MovieID: movie.ID,
			Title:   movie.Title,
			Score:   n.score,
		})
	}

	e.foundCount.Add(1)
	e.skippedCount.Add(int64(len(res.Warnings)))
	metrics.RecordRecommendation(true, len(res.Warnings), time.Since(start))

	logging.ForComponent(ctx, "recommend").Debug().
		Str("title", title).
		Int("row", row).
		Int("returned", len(res.Recommendations)).
		Int("skipped", len(res.Warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")

	return res
}

// Titles returns the full selection list in catalog order.
func (e *Engine) Titles() []string {
	return e.model.Catalog.Titles()
}

// Size returns the number of catalog rows.
func (e *Engine) Size() int {
	return e.model.Catalog.Len()
}

// K returns the configured result size.
func (e *Engine) K() int {
	return e.config.K
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		FoundCount:   e.foundCount.Load(),
		MissCount:    e.missCount.Load(),
		SkippedCount: e.skippedCount.Load(),
	}
}

type neighbour struct {
	index int
	score float64
}

// ranksBefore orders by descending score, then ascending index. This is the
// order a stable descending sort produces.
func (a neighbour) ranksBefore(b neighbour) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.index < b.index
}

// topNeighbours returns the k best entries of row, excluding position self,
// in rank order. It keeps a sorted window of size k instead of sorting the
// whole row.
func topNeighbours(row []float64, self, k int) []neighbour {
	if k <= 0 {
		return nil
	}

	top := make([]neighbour, 0, k+1)
	for i, score := range row {
		if i == self {
			continue
		}
		n := neighbour{index: i, score: score}
		if len(top) == k && !n.ranksBefore(top[k-1]) {
			continue
		}

		pos := len(top)
		for pos > 0 && n.ranksBefore(top[pos-1]) {
			pos--
		}
		top = append(top, neighbour{})
		copy(top[pos+1:], top[pos:])
		top[pos] = n
		if len(top) > k {
			top = top[:k]
		}
	}
	return top
}
