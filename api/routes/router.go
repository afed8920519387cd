package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bentolink/bentolink-backend/api/controllers"
	"github.com/bentolink/bentolink-backend/api/middleware"
	"github.com/bentolink/bentolink-backend/internal/auth"
	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/internal/clicks"
	"github.com/bentolink/bentolink-backend/internal/media"
	"github.com/bentolink/bentolink-backend/internal/onboarding"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/pkg/auth/session"
	"github.com/bentolink/bentolink-backend/pkg/config"
	"github.com/bentolink/bentolink-backend/pkg/db"
	"github.com/bentolink/bentolink-backend/pkg/logger"
	"github.com/bentolink/bentolink-backend/pkg/metrics"
	"github.com/bentolink/bentolink-backend/pkg/redis"
	"github.com/bentolink/bentolink-backend/pkg/storage/gcs"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Cfg            *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	GCS            *gcs.Client
	SessionManager sessionManager
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth       auth.Service
	Profiles   profiles.Service
	Cards      cards.Service
	Media      media.Service
	Onboarding onboarding.Service
	Clicks     clicks.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Cfg
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.PublicOrigin),
		middleware.Metrics(d.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis, d.GCS))
	})

	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.SessionManager, logg)).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api/v1/public", func(r chi.Router) {
		r.Get("/pages/{handle}", controllers.PublicPage(d.Profiles, logg))
		r.Post("/cards/{cardId}/click", controllers.PublicCardClick(d.Clicks, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(d.Profiles, logg))
			r.Patch("/", controllers.ProfileUpdate(d.Profiles, logg))
			r.Put("/theme", controllers.ProfileSetTheme(d.Profiles, logg))
			r.Post("/publish", controllers.ProfilePublish(d.Profiles, logg))
			r.Post("/unpublish", controllers.ProfileUnpublish(d.Profiles, logg))
			r.Put("/avatar", controllers.ProfileSetAvatar(d.Profiles, logg))
			r.Put("/banner", controllers.ProfileSetBanner(d.Profiles, logg))
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", controllers.CardsList(d.Cards, logg))
			r.Post("/", controllers.CardsCreate(d.Cards, logg))
			r.Post("/apply-template", controllers.CardsApplyTemplate(d.Cards, logg))
			r.Patch("/{cardId}", controllers.CardsUpdate(d.Cards, logg))
			r.Delete("/{cardId}", controllers.CardsDelete(d.Cards, logg))
			r.Post("/{cardId}/reorder", controllers.CardsReorder(d.Cards, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", controllers.MediaUpload(d.Media, cfg.Media, logg))
			r.Get("/{assetId}", controllers.MediaGet(d.Media, logg))
		})

		r.Post("/onboarding/complete", controllers.OnboardingComplete(d.Onboarding, logg))
	})

	return r
}
