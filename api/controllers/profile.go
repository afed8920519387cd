package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bentolink/bentolink-backend/api/middleware"
	"github.com/bentolink/bentolink-backend/api/responses"
	"github.com/bentolink/bentolink-backend/api/validators"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
)

type profileUpdateRequest struct {
	Handle      *string `json:"handle" validate:"omitempty,max=25"`
	DisplayName *string `json:"displayName" validate:"omitempty,max=60"`
	Bio         *string `json:"bio" validate:"omitempty,max=240"`
}

type themeRequest struct {
	Preset     string  `json:"preset" validate:"required"`
	Accent     *string `json:"accent" validate:"omitempty,max=9"`
	Background *string `json:"background" validate:"omitempty,max=9"`
}

type assetRefRequest struct {
	AssetID string `json:"assetId" validate:"required,uuid"`
}

func profileIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.ProfileIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "profile context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid profile id")
	}
	return id, nil
}

func ProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, profileID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func ProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, profileID, profiles.UpdateProfileInput{
			Handle:      payload.Handle,
			DisplayName: payload.DisplayName,
			Bio:         payload.Bio,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func ProfileSetTheme(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload themeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.SetTheme(ctx, profileID, profiles.ThemeInput{
			Preset:     payload.Preset,
			Accent:     payload.Accent,
			Background: payload.Background,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func ProfilePublish(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return profilePublication(svc, logg, true)
}

func ProfileUnpublish(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return profilePublication(svc, logg, false)
}

func profilePublication(svc profiles.Service, logg *logger.Logger, publish bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var dto profiles.ProfileDTO
		if publish {
			dto, err = svc.Publish(ctx, profileID)
		} else {
			dto, err = svc.Unpublish(ctx, profileID)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func ProfileSetAvatar(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return profileImage(svc, logg, true)
}

func ProfileSetBanner(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return profileImage(svc, logg, false)
}

func profileImage(svc profiles.Service, logg *logger.Logger, avatar bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload assetRefRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		assetID, err := uuid.Parse(payload.AssetID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid asset id"))
			return
		}

		var dto profiles.ProfileDTO
		if avatar {
			dto, err = svc.SetAvatar(ctx, profileID, assetID)
		} else {
			dto, err = svc.SetBanner(ctx, profileID, assetID)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
