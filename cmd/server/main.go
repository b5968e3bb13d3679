// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/tasteprofile/internal/api"
	"github.com/tomtom215/tasteprofile/internal/config"
	"github.com/tomtom215/tasteprofile/internal/logging"
	"github.com/tomtom215/tasteprofile/internal/metrics"
	"github.com/tomtom215/tasteprofile/internal/supervisor"
	"github.com/tomtom215/tasteprofile/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	logConfiguration(cfg)

	enricher := buildEnricher(cfg)
	handler := api.NewHandler(enricher, api.HandlerConfig{
		MaxBatchRecords: cfg.Enrich.MaxBatchRecords,
		Version:         version,
	})
	router := api.NewRouter(handler, middlewareConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog logs supervisor events through the zerolog-backed slog adapter
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := services.NewHTTPServer(services.ServerOptions{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		RequestTimeout: cfg.Server.Timeout,
	}, router.SetupChi())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("version", version).Msg("Starting tasteprofile")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
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

	logging.Info().Msg("Application stopped gracefully")
}

func logConfiguration(cfg *config.Config) {
	event := logging.Info().
		Bool("upstream_configured", cfg.UpstreamConfigured()).
		Strs("categories", cfg.Enrich.Categories).
		Int("limiter_max_concurrent", cfg.Limiter.MaxConcurrent).
		Dur("limiter_min_spacing", cfg.Limiter.MinSpacing).
		Int("retry_max_retries", cfg.Retry.MaxRetries).
		Dur("cache_ttl", cfg.Cache.TTL).
		Bool("breaker_enabled", cfg.Breaker.Enabled)
	if cfg.UpstreamConfigured() {
		event = event.
			Str("upstream_url", cfg.Upstream.URL).
			Str("api_key", logging.RedactSecret(cfg.Upstream.APIKey))
	}
	event.Msg("Configuration loaded")

	if !cfg.UpstreamConfigured() {
		logging.Warn().Msg("TASTE_API_KEY not set, every category will be served from fallback data")
	}
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}
}
