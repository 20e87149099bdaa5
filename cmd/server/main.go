// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/lookup"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// modelLoadTimeout bounds reading the catalog and similarity artifacts.
const modelLoadTimeout = 2 * time.Minute

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := cfg.LogConfig()
	logCfg.Version = version
	logging.Init(logCfg)
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("config", cfg.String()).
		Msg("Starting Reelmatch")

	// Both artifacts must load before the server listens. Any failure here is
	// fatal: serving without a model would answer every lookup wrongly.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), modelLoadTimeout)
	model, err := catalog.Load(loadCtx, cfg.ModelPaths())
	cancelLoad()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load recommendation model")
	}

	engine, err := recommend.NewEngine(model, &recommend.Config{K: cfg.Recommend.K}, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	store, err := cache.NewStore(cfg.CacheStoreConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open poster cache")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()
	logging.Info().Str("store", store.Name()).Dur("ttl", cfg.Cache.TTL).Msg("Poster cache ready")

	fetcher, breaker, err := poster.New(cfg.PosterConfig(), store, cfg.Cache.TTL, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create poster fetcher")
	}

	lookupSvc, err := lookup.NewService(engine, fetcher, lookup.Config{
		Concurrency: cfg.Recommend.PosterConcurrency,
	}, logging.WithComponent("lookup"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create lookup service")
	}

	handler := api.NewHandler(api.HandlerConfig{
		Lookup:  lookupSvc,
		Cache:   store,
		Breaker: breaker,
		Version: version,
	})
	guards := api.DefaultMiddlewareConfig()
	guards.CORSOrigins = cfg.Security.CORSOrigins
	guards.APILimit = api.Limit{Requests: cfg.Security.RateLimitReqs, Window: cfg.Security.RateLimitWindow}
	guards.LimitDisabled = cfg.Security.RateLimitDisabled
	router := api.NewRouter(handler, api.NewMiddleware(guards))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if badgerStore, ok := store.(*cache.BadgerStore); ok && !cfg.Cache.InMemory {
		if _, err := tree.Add(supervisor.LayerCache, services.NewCacheGCService(badgerStore, cfg.Cache.GCInterval, cfg.Cache.GCDiscardRatio)); err != nil {
			logging.Fatal().Err(err).Msg("Failed to add cache GC service")
		}
		logging.Info().Dur("interval", cfg.Cache.GCInterval).Msg("Cache GC service added")
	}

	if _, err := tree.Add(supervisor.LayerAPI, services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout)); err != nil {
		logging.Fatal().Err(err).Msg("Failed to add HTTP server service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Int("movies", engine.Size()).Int("k", engine.K()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Reelmatch stopped")
}
