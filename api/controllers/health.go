package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/bentolink/bentolink-backend/api/responses"
	"github.com/bentolink/bentolink-backend/pkg/config"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
)

const envHeader = "X-Bentolink-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every wired dependency answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP, gcsP pinger) http.HandlerFunc {
	deps := []struct {
		name string
		dep  pinger
	}{
		{"postgres", dbP},
		{"redis", redisP},
		{"gcs", gcsP},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for _, entry := range deps {
			if entry.dep == nil {
				continue
			}
			if err := entry.dep.Ping(ctx); err != nil {
				healthy = false
				status[entry.name] = "down"
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "dependency", entry.name), "readiness check failed")
				}
				continue
			}
			status[entry.name] = "up"
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(status))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": status})
	}
}
