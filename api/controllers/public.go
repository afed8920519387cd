package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bentolink/bentolink-backend/api/responses"
	"github.com/bentolink/bentolink-backend/internal/clicks"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
)

// PublicPage renders the anonymous page payload for a handle.
func PublicPage(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		handle := strings.TrimSpace(chi.URLParam(r, "handle"))
		if handle == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "handle is required"))
			return
		}

		page, err := svc.PublicPage(ctx, handle)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// PublicCardClick buffers a click for async aggregation. Accepted even when
// the card may already be gone; the flusher drops stale counters.
func PublicCardClick(svc clicks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "click service unavailable"))
			return
		}

		cardID, err := uuid.Parse(chi.URLParam(r, "cardId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid card id"))
			return
		}

		// Best effort: a lost click is an undercount, never a caller error.
		if err := svc.Track(ctx, cardID); err != nil && logg != nil {
			logg.Warn(logg.WithField(ctx, "card_id", cardID.String()), "click buffer unavailable")
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}
