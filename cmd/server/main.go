// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

// Package main is the entry point for the Steam Game Recommender server.
//
// The server recommends Steam games by comparing the tag profile of a
// user's owned library against a store catalogue. It initializes
// components in the following order:
//
//  1. Configuration: layered loading via Koanf v2 (defaults, config
//     file, environment variables)
//  2. Logging: zerolog with configurable level and format
//  3. Catalogue: the store CSV is parsed once at startup; a failure
//     here is fatal because nothing can be recommended without it
//  4. Steam client: circuit-breaker-wrapped Web API client with rate
//     limiting and 429 retry
//  5. Cache: in-memory TTL cache for owned-games lookups
//  6. Recommendation engine: tag basis, taste profile, cosine ranking
//  7. HTTP server: Chi router with the JSON API, landing page,
//     health probes, and Prometheus metrics
//
// # Configuration
//
// Required environment variables:
//   - STEAM_API_KEY: Steam Web API key (https://steamcommunity.com/dev/apikey)
//   - CATALOG_PATH: path to the store catalogue CSV
//
// All other settings have sensible defaults and can be set via
// environment variables, a .env file, or a config.yaml file (see
// internal/config for the full surface).
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections and waits up to HTTP_SHUTDOWN_TIMEOUT for
// in-flight requests to complete.
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

	"github.com/ja-nacek/steam-game-recommender/internal/api"
	"github.com/ja-nacek/steam-game-recommender/internal/cache"
	"github.com/ja-nacek/steam-game-recommender/internal/catalog"
	"github.com/ja-nacek/steam-game-recommender/internal/config"
	"github.com/ja-nacek/steam-game-recommender/internal/logging"
	"github.com/ja-nacek/steam-game-recommender/internal/metrics"
	"github.com/ja-nacek/steam-game-recommender/internal/recommend"
	"github.com/ja-nacek/steam-game-recommender/internal/steam"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The default logger from init() is active before Init runs
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("catalog_path", cfg.Catalog.Path).
		Int("top_n", cfg.Recommend.TopN).
		Msg("Starting Steam Game Recommender")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalogue")
	}
	vocabulary := recommend.BuildBasis(cat.TagLists())
	metrics.CatalogVocabularySize.Set(float64(len(vocabulary)))
	logging.Info().
		Int("items", cat.Len()).
		Int("vocabulary", len(vocabulary)).
		Msg("Catalogue loaded")

	ownedGamesCache := cache.New("owned_games", cfg.Cache.TTL)
	defer ownedGamesCache.Clear()

	steamClient := steam.NewCircuitBreakerClient(&cfg.Steam)
	provider := steam.NewProvider(steamClient, ownedGamesCache)

	engine, err := recommend.NewEngine(cat, provider, recommend.Config{
		TopN:     cfg.Recommend.TopN,
		MaxTopN:  cfg.Recommend.MaxTopN,
		MinGames: cfg.Recommend.MinGames,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(engine, cat, version)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Uptime gauge for the /metrics endpoint
	startTime := time.Now()
	uptimeDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			case <-uptimeDone:
				return
			}
		}
	}()
	defer close(uptimeDone)

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
		if err := server.Close(); err != nil {
			logging.Error().Err(err).Msg("Forced close failed")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
