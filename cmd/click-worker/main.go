package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/internal/clicks"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/pkg/config"
	"github.com/bentolink/bentolink-backend/pkg/db"
	"github.com/bentolink/bentolink-backend/pkg/logger"
	"github.com/bentolink/bentolink-backend/pkg/metrics"
	"github.com/bentolink/bentolink-backend/pkg/migrate"
	"github.com/bentolink/bentolink-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "click-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "click-worker"

	logg = logger.New(logger.Options{
		ServiceName: "click-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	clickService, err := clicks.NewService(clicks.ServiceParams{
		Buffer:   redisClient,
		Cards:    cards.NewRepository(dbClient.DB()),
		Profiles: profiles.NewRepository(dbClient.DB()),
		Metrics:  jobMetrics,
		Logger:   logg,
		Batch:    cfg.Clicks.FlushBatch,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create click service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Clicks.FlushInterval.String(),
	})
	logg.Info(ctx, "starting click worker")

	clicks.Run(ctx, clickService, cfg.Clicks.FlushInterval, logg)

	// Drain whatever is still buffered before exiting.
	if flushed, err := clickService.Flush(context.Background()); err != nil {
		logg.Error(context.Background(), "final click flush failed", err)
	} else if flushed > 0 {
		logg.Info(logg.WithField(context.Background(), "flushed", flushed), "final click flush complete")
	}

	logg.Info(ctx, "click worker shutting down gracefully")
}
