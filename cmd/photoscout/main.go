package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/photoscout/photoscout/internal/adapter/httpapi"
	kafkaadapter "github.com/photoscout/photoscout/internal/adapter/kafka"
	"github.com/photoscout/photoscout/internal/adapter/openweather"
	"github.com/photoscout/photoscout/internal/config"
	"github.com/photoscout/photoscout/internal/dispatch"
	"github.com/photoscout/photoscout/internal/observability"
	"github.com/photoscout/photoscout/internal/refresh"
	"github.com/photoscout/photoscout/internal/scheduler"
	"github.com/photoscout/photoscout/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Event publishing (feature-flagged via KAFKA_ENABLED).
	var publisher dispatch.Publisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = kafkaWriter
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaEventsTopic)
	} else {
		publisher = dispatch.NewLogPublisher(logger)
		logger.Info("kafka publishing disabled, events go to the log")
	}
	dispatcher := dispatch.New(publisher, logger, metrics)

	cache := store.NewWeatherCache()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Forecast refresh (feature-flagged via WEATHER_ENABLED / OPENWEATHER_API_KEY).
	var ready httpapi.ReadinessChecker = httpapi.AlwaysReady{}
	var sched *scheduler.Scheduler
	if cfg.WeatherEnabled {
		provider := openweather.NewClient(cfg, logger, metrics)
		refresher := refresh.New(db, provider, cache, dispatcher, logger, metrics)
		ready = refresher

		sched, err = scheduler.New(cfg.RefreshSchedule, refresher, logger)
		if err != nil {
			logger.Error("failed to create scheduler", "error", err)
			os.Exit(1)
		}
		logger.Info("forecast refresh enabled", "schedule", cfg.RefreshSchedule)
	} else {
		logger.Info("forecast refresh disabled")
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, ready, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if sched != nil {
		go sched.Start(ctx)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
