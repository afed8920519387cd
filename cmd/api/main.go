package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bentolink/bentolink-backend/api/routes"
	"github.com/bentolink/bentolink-backend/internal/audit"
	"github.com/bentolink/bentolink-backend/internal/auth"
	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/internal/clicks"
	"github.com/bentolink/bentolink-backend/internal/media"
	"github.com/bentolink/bentolink-backend/internal/onboarding"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/internal/users"
	"github.com/bentolink/bentolink-backend/pkg/auth/session"
	"github.com/bentolink/bentolink-backend/pkg/config"
	"github.com/bentolink/bentolink-backend/pkg/db"
	"github.com/bentolink/bentolink-backend/pkg/logger"
	"github.com/bentolink/bentolink-backend/pkg/metrics"
	"github.com/bentolink/bentolink-backend/pkg/migrate"
	"github.com/bentolink/bentolink-backend/pkg/redis"
	"github.com/bentolink/bentolink-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing object storage", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	profilesRepo := profiles.NewRepository(dbClient.DB())
	cardsRepo := cards.NewRepository(dbClient.DB())
	assetsRepo := media.NewRepository(dbClient.DB())
	auditRecorder := audit.NewRecorder(dbClient.DB(), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		ProfileRepo:    profilesRepo,
		SessionManager: sessionManager,
		Tx:             dbClient,
		Audit:          auditRecorder,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.ServiceParams{
		Repo:   profilesRepo,
		Assets: assetsRepo,
		Users:  usersRepo,
		Audit:  auditRecorder,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	cardService, err := cards.NewService(cards.ServiceParams{
		Repo:   cardsRepo,
		Tx:     dbClient,
		Policy: cards.NewPolicy(nil),
		Audit:  auditRecorder,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create card service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(media.ServiceParams{
		Repo:  assetsRepo,
		Store: gcsClient,
		Cfg:   cfg.Media,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	onboardingService, err := onboarding.NewService(onboarding.ServiceParams{
		Cards:    cardService,
		Profiles: profileService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create onboarding service", err)
		os.Exit(1)
	}

	clickService, err := clicks.NewService(clicks.ServiceParams{
		Buffer:   redisClient,
		Cards:    cardsRepo,
		Profiles: profilesRepo,
		Logger:   logg,
		Batch:    cfg.Clicks.FlushBatch,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create click service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	router := routes.NewRouter(routes.Deps{
		Cfg:            cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		GCS:            gcsClient,
		SessionManager: sessionManager,
		HTTPMetrics:    httpMetrics,
		Auth:           authService,
		Profiles:       profileService,
		Cards:          cardService,
		Media:          mediaService,
		Onboarding:     onboardingService,
		Clicks:         clickService,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "server shutdown failed", err)
		}
	}()

	logg.Info(ctx, "starting api server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}
