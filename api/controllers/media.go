package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bentolink/bentolink-backend/api/middleware"
	"github.com/bentolink/bentolink-backend/api/responses"
	"github.com/bentolink/bentolink-backend/internal/media"
	"github.com/bentolink/bentolink-backend/pkg/config"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
)

func assetIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "assetId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid asset id")
	}
	return id, nil
}

// MediaUpload accepts a raw image body. The Content-Type header decides the
// stored extension; the service enforces the allowed types and size cap.
func MediaUpload(svc media.Service, cfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
			return
		}

		maxMB := cfg.MaxUploadMB
		if maxMB <= 0 {
			maxMB = 10
		}
		r.Body = http.MaxBytesReader(w, r.Body, int64(maxMB)<<20)
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "upload exceeds size limit"))
			return
		}

		dto, err := svc.Upload(ctx, userID, media.UploadInput{
			ContentType: r.Header.Get("Content-Type"),
			Payload:     payload,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// MediaGet returns asset metadata by id.
func MediaGet(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		assetID, err := assetIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, assetID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
