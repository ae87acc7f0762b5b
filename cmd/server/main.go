package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/venue-analytics-service/internal/adapter/feed"
	httpadapter "github.com/couchcryptid/venue-analytics-service/internal/adapter/http"
	"github.com/couchcryptid/venue-analytics-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/venue-analytics-service/internal/config"
	"github.com/couchcryptid/venue-analytics-service/internal/dashboard"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	feedClient := feed.NewClient(cfg.FeedURL, 30*time.Second, logger, metrics)
	feedSource := feed.NewCachedClient(feedClient, cfg.FeedCacheTTL, clock, metrics)

	weatherClient := openmeteo.NewClient(cfg.Latitude, cfg.Longitude, 15*time.Second, logger, metrics)
	weatherSource := openmeteo.NewCachedSource(weatherClient, cfg.WeatherCacheTTL, clock, metrics)

	svc := dashboard.New(feedSource, weatherSource, cfg.RefreshInterval, clock, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, weatherSource, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := svc.Run(ctx); err != nil {
			logger.Error("dashboard refresh loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
