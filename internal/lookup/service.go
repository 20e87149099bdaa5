// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// NotFoundMessage is shown when the queried title is not in the catalog.
const NotFoundMessage = "No recommendations found. Please try another movie."

// DefaultConcurrency is the number of poster fetches in flight per lookup.
const DefaultConcurrency = 5

// Recommender produces ranked neighbours for a title.
type Recommender interface {
	Similar(ctx context.Context, title string) recommend.Result
	Titles() []string
}

// PosterResolver maps a movie id to a poster URL. It must never return an
// empty URL.
type PosterResolver interface {
	Resolve(ctx context.Context, movieID int64) poster.Resolution
}

// Pick is one recommendation paired with its poster.
type Pick struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	MovieID     int64   `json:"movie_id"`
	PosterURL   string  `json:"poster_url"`
	Placeholder bool    `json:"placeholder"`
	Score       float64 `json:"score"`
}

// Warning is a non-fatal problem surfaced alongside a result.
type Warning struct {
	// Source is "recommend" or "poster".
	Source  string `json:"source"`
	Kind    string `json:"kind"`
	MovieID int64  `json:"movie_id,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// Result is the presentation-ready outcome of a lookup.
type Result struct {
	Title    string    `json:"title"`
	Found    bool      `json:"found"`
	Picks    []Pick    `json:"picks"`
	Warnings []Warning `json:"warnings,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// Config tunes the lookup service.
type Config struct {
	// Concurrency bounds parallel poster fetches within one lookup.
	Concurrency int
}

// Service answers lookups.
type Service struct {
	recommender Recommender
	posters     PosterResolver
	concurrency int
	logger      zerolog.Logger
}

// NewService creates a lookup service.
func NewService(recommender Recommender, posters PosterResolver, cfg Config, logger zerolog.Logger) (*Service, error) {
	if recommender == nil {
		return nil, errors.New("recommender is required")
	}
	if posters == nil {
		return nil, errors.New("poster resolver is required")
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must be non-negative, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Service{
		recommender: recommender,
		posters:     posters,
		concurrency: cfg.Concurrency,
		logger:      logger,
	}, nil
}

// Titles returns every selectable title in catalog order.
func (s *Service) Titles() []string {
	return s.recommender.Titles()
}

// Lookup recommends titles similar to title and resolves their posters.
func (s *Service) Lookup(ctx context.Context, title string) Result {
	rec := s.recommender.Similar(ctx, title)
	if !rec.Found {
		s.logger.Debug().Str("title", title).Msg("Title not in catalog")
		return Result{Title: title, Picks: []Pick{}, Message: NotFoundMessage}
	}

	picks := make([]Pick, len(rec.Recommendations))
	resolutions := make([]poster.Resolution, len(rec.Recommendations))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, r := range rec.Recommendations {
		picks[i] = Pick{Rank: r.Rank, Name: r.Title, MovieID: r.MovieID, Score: r.Score}
		g.Go(func() error {
			resolutions[i] = s.posters.Resolve(ctx, r.MovieID)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	var warnings []Warning
	for _, w := range rec.Warnings {
		warnings = append(warnings, Warning{
			Source:  "recommend",
			Kind:    string(w.Kind),
			Title:   w.Title,
			Message: w.String(),
		})
	}
	for i, res := range resolutions {
		picks[i].PosterURL = res.URL
		picks[i].Placeholder = res.Placeholder
		if res.Warning != nil {
			warnings = append(warnings, Warning{
				Source:  "poster",
				Kind:    string(res.Warning.Kind),
				MovieID: res.Warning.MovieID,
				Title:   picks[i].Name,
				Message: res.Warning.Message,
			})
		}
	}

	return Result{
		Title:    rec.Title,
		Found:    true,
		Picks:    picks,
		Warnings: warnings,
	}
}
