// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceKey is the single context slot holding trace; the value is copied on
// every update so contexts never share mutable state.
type traceKey struct{}

type trace struct {
	requestID     string
	correlationID string
}

func traceFrom(ctx context.Context) trace {
	if t, ok := ctx.Value(traceKey{}).(trace); ok {
		return t
	}
	return trace{}
}

// GenerateCorrelationID returns a short id (8 hex characters) that ties the
// log lines of one lookup together across components.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a full random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithRequestID attaches the HTTP request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	t := traceFrom(ctx)
	t.requestID = id
	return context.WithValue(ctx, traceKey{}, t)
}

// ContextWithCorrelationID attaches a correlation id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	t := traceFrom(ctx)
	t.correlationID = id
	return context.WithValue(ctx, traceKey{}, t)
}

// ContextWithNewCorrelationID attaches a freshly generated correlation id.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	return traceFrom(ctx).requestID
}

// CorrelationIDFromContext returns the correlation id or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return traceFrom(ctx).correlationID
}

// CtxWith starts a child logger carrying the ids found in ctx.
//
//	logger := logging.CtxWith(ctx).Str("title", title).Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	t := traceFrom(ctx)
	zc := Logger().With()
	if t.requestID != "" {
		zc = zc.Str("request_id", t.requestID)
	}
	if t.correlationID != "" {
		zc = zc.Str("correlation_id", t.correlationID)
	}
	return zc
}

// Ctx is CtxWith without extra fields.
//
//	logging.Ctx(ctx).Info().Msg("Lookup served")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// ForComponent is CtxWith plus a component field, for request-scoped code
// inside a subsystem.
//
//	logging.ForComponent(ctx, "poster").Warn().Msg("Poster unavailable")
func ForComponent(ctx context.Context, component string) *zerolog.Logger {
	l := CtxWith(ctx).Str("component", component).Logger()
	return &l
}

// WithComponent returns a long-lived logger for a subsystem, with no
// request fields.
//
//	log := logging.WithComponent("catalog")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
