package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/kafka"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Dataset source: local file wins over the URL; optionally behind Redis.
	var src domain.DatasetSource
	location := cfg.DatasetURL
	if cfg.DatasetFile != "" {
		src = source.NewFileSource(cfg.DatasetFile)
		location = cfg.DatasetFile
	} else {
		src = source.NewHTTPSource(cfg.DatasetURL, cfg.FetchTimeout, logger)
	}

	var redisStore *source.RedisStore
	if cfg.RedisURL != "" {
		redisStore, err = source.NewRedisStore(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid redis configuration", "error", err)
			os.Exit(1)
		}
		src = source.NewCachedSource(src, redisStore, source.CacheKey(location), cfg.DatasetCacheTTL, logger)
		logger.Info("dataset cache enabled", "ttl", cfg.DatasetCacheTTL)
	}

	// Interaction events (feature-flagged via EVENTS_ENABLED).
	var opts []httpadapter.Option
	opts = append(opts, httpadapter.WithRenderCacheSize(cfg.RenderCacheSize))
	var events *kafkaadapter.EventWriter
	if cfg.EventsEnabled {
		events = kafkaadapter.NewEventWriter(cfg, logger, metrics)
		opts = append(opts, httpadapter.WithEventSink(events))
		logger.Info("interaction events enabled", "topic", cfg.KafkaEventsTopic)
	} else {
		logger.Info("interaction events disabled")
	}

	p := pipeline.New(src, chart.DefaultLayout(), chart.DefaultPalette(), logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, metrics, logger, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The chart is built before anything is served; a dataset that cannot be
	// loaded aborts startup.
	if err := p.Run(ctx); err != nil {
		logger.Error("chart unavailable", "error", err)
		closeAll(logger, events, redisStore)
		os.Exit(1)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closeAll(logger, events, redisStore)

	logger.Info("shutdown complete")
}

func closeAll(logger *slog.Logger, events *kafkaadapter.EventWriter, store *source.RedisStore) {
	if events != nil {
		if err := events.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}
}
