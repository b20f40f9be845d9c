// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package main is the entry point for the Garderobe server.
//
// Garderobe is a self-hosted wardrobe assistant: it stores analyzed
// clothing items, checks color compatibility while an outfit is being
// assembled, ranks candidates for each clothing slot against weather
// and wear history, and records worn outfits with user feedback.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, config.yaml, env)
//  2. Store: BadgerDB document store for items, feedback, and outfit history
//  3. Engine: the outfit compatibility and ranking engine, wired to the
//     store for feedback history
//  4. HTTP server: REST API under /api/v1 plus Prometheus /metrics
//
// Everything long-running is supervised by a suture tree: the HTTP
// server in the api layer and the Badger value-log garbage collector in
// the maintenance layer.
//
// # Configuration
//
// Highest priority wins:
//   - Environment variables (HTTP_PORT, GARDEROBE_STORE_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml, or the path in CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the server
// timeout, and closes the store last so every accepted write is
// persisted.
//
// # Example Usage
//
// Development, no authentication:
//
//	export AUTH_MODE=none
//	export GARDEROBE_STORE_PATH=./data
//	./garderobe
//
// Production with basic auth:
//
//	export AUTH_MODE=basic
//	export ADMIN_USERNAME=admin
//	export ADMIN_PASSWORD_HASH='$2a$10$...'  # bcrypt
//	./garderobe
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkrogh/garderobe/internal/api"
	"github.com/mkrogh/garderobe/internal/config"
	"github.com/mkrogh/garderobe/internal/logging"
	"github.com/mkrogh/garderobe/internal/outfit"
	"github.com/mkrogh/garderobe/internal/store"
	"github.com/mkrogh/garderobe/internal/supervisor"
	"github.com/mkrogh/garderobe/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("store_path", cfg.Store.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Configuration loaded")

	if cfg.Security.AuthMode == "none" {
		logging.Warn().Msg("Authentication is disabled (AUTH_MODE=none); every endpoint is publicly accessible")
	}

	st, err := store.Open(&cfg.Store, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened")

	engine, err := outfit.NewEngine(&cfg.Engine, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create outfit engine")
	}
	// The store supplies approved sets and rejection lookups for ranking.
	engine.SetHistoryProvider(st)

	handlers := api.NewHandlers(st, engine, cfg, logging.Logger())
	router := api.NewRouter(cfg, handlers)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The slog adapter bridges zerolog to sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(services.NewStoreGCService(st, st.GCInterval(), logging.Logger()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped gracefully")
}
