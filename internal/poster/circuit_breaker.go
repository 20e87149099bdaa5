// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// BreakerSettings tunes the TMDB circuit breaker.
type BreakerSettings struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts. Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before half-opening.
	Timeout time.Duration

	// MinRequests is the sample size required before the breaker may trip.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64
}

// DefaultBreakerSettings opens after a 60% failure rate over at least 10
// requests and retries after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient wraps a MovieClient with circuit breaker protection.
// While open, calls fail immediately with gobreaker.ErrOpenState.
type CircuitBreakerClient struct {
	client MovieClient
	cb     *gobreaker.CircuitBreaker[*MovieDetails]
	name   string
}

// NewCircuitBreakerClient wraps client.
func NewCircuitBreakerClient(client MovieClient, settings BreakerSettings) *CircuitBreakerClient {
	const cbName = "tmdb-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(stateToFloat(gobreaker.StateClosed))
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	log := logging.WithComponent("poster")

	cb := gobreaker.NewCircuitBreaker[*MovieDetails](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio < settings.FailureRatio {
				return false
			}
			log.Warn().
				Uint32("requests", counts.Requests).
				Uint32("failures", counts.TotalFailures).
				Float64("failure_ratio", ratio).
				Msg("TMDB failure ratio reached, opening circuit")
			return true
		},

		// 4xx answers other than 401 and 429 do not count against the
		// breaker, nor does a caller abandoning its own request.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode >= 400 && se.StatusCode < 500 &&
					se.StatusCode != http.StatusTooManyRequests &&
					se.StatusCode != http.StatusUnauthorized
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromName, toName := stateToString(from), stateToString(to)
			log.Info().
				Str("breaker", name).
				Str("from", fromName).
				Str("to", toName).
				Msg("Circuit breaker state changed")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromName, toName).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// GetMovie calls the wrapped client with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetMovie(ctx context.Context, movieID int64) (*MovieDetails, error) {
	result, err := cbc.cb.Execute(func() (*MovieDetails, error) {
		return cbc.client.GetMovie(ctx, movieID)
	})

	if err != nil {
		if isBreakerRejection(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)

	return result, nil
}

// State returns the current breaker state name.
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// breakerStates maps gobreaker states to the gauge value and the name used
// in logs, metrics labels and the readiness response.
var breakerStates = map[gobreaker.State]struct {
	gauge float64
	name  string
}{
	gobreaker.StateClosed:   {0, "closed"},
	gobreaker.StateHalfOpen: {1, "half-open"},
	gobreaker.StateOpen:     {2, "open"},
}

func stateToFloat(state gobreaker.State) float64 {
	if s, ok := breakerStates[state]; ok {
		return s.gauge
	}
	return -1
}

func stateToString(state gobreaker.State) string {
	if s, ok := breakerStates[state]; ok {
		return s.name
	}
	return "unknown"
}

var _ MovieClient = (*CircuitBreakerClient)(nil)
