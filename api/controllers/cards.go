package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bentolink/bentolink-backend/api/responses"
	"github.com/bentolink/bentolink-backend/api/validators"
	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
	"github.com/bentolink/bentolink-backend/pkg/types"
)

type createCardRequest struct {
	Type        string          `json:"type" validate:"required"`
	Title       string          `json:"title" validate:"required,max=80"`
	Subtitle    *string         `json:"subtitle" validate:"omitempty,max=120"`
	URL         *string         `json:"url" validate:"omitempty,max=2048"`
	Icon        *string         `json:"icon" validate:"omitempty,max=50"`
	Cols        int             `json:"cols" validate:"omitempty,min=0,max=6"`
	Rows        int             `json:"rows" validate:"omitempty,min=0,max=3"`
	Data        *types.CardData `json:"data"`
	AccentColor *string         `json:"accentColor" validate:"omitempty,max=9"`
}

type updateCardRequest struct {
	Title       *string         `json:"title" validate:"omitempty,max=80"`
	Subtitle    *string         `json:"subtitle" validate:"omitempty,max=120"`
	URL         *string         `json:"url" validate:"omitempty,max=2048"`
	Icon        *string         `json:"icon" validate:"omitempty,max=50"`
	Cols        *int            `json:"cols" validate:"omitempty,min=1,max=6"`
	Rows        *int            `json:"rows" validate:"omitempty,min=1,max=3"`
	Data        *types.CardData `json:"data"`
	AccentColor *string         `json:"accentColor" validate:"omitempty,max=9"`
}

type reorderRequest struct {
	Direction string `json:"direction" validate:"required"`
}

type applyTemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

func cardIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "cardId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid card id")
	}
	return id, nil
}

func CardsList(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "card service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.List(ctx, profileID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

func CardsCreate(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "card service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cardType, err := enums.ParseCardType(payload.Type)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid card type"))
			return
		}

		input := cards.CreateCardInput{
			Type:        cardType,
			Title:       payload.Title,
			Subtitle:    payload.Subtitle,
			URL:         payload.URL,
			Icon:        payload.Icon,
			Cols:        payload.Cols,
			Rows:        payload.Rows,
			AccentColor: payload.AccentColor,
		}
		if payload.Data != nil {
			input.Data = *payload.Data
		}

		dto, err := svc.Create(ctx, profileID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func CardsUpdate(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "card service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cardID, err := cardIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, profileID, cardID, cards.UpdateCardInput{
			Title:       payload.Title,
			Subtitle:    payload.Subtitle,
			URL:         payload.URL,
			Icon:        payload.Icon,
			Cols:        payload.Cols,
			Rows:        payload.Rows,
			Data:        payload.Data,
			AccentColor: payload.AccentColor,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func CardsDelete(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "card service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cardID, err := cardIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, profileID, cardID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func CardsReorder(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "card service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cardID, err := cardIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload reorderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		direction, err := enums.ParseReorderDirection(payload.Direction)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction"))
			return
		}

		if err := svc.Reorder(ctx, profileID, cardID, direction); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reordered"})
	}
}

func CardsApplyTemplate(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "card service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload applyTemplateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		template, err := enums.ParseLayoutTemplate(payload.Template)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid layout template"))
			return
		}

		dtos, err := svc.ApplyTemplate(ctx, profileID, template)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}
