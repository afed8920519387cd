package controllers

import (
	"net/http"

	"github.com/bentolink/bentolink-backend/api/responses"
	"github.com/bentolink/bentolink-backend/api/validators"
	"github.com/bentolink/bentolink-backend/internal/onboarding"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
)

// OnboardingComplete seeds the new page and publishes it in one call.
func OnboardingComplete(svc onboarding.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "onboarding service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload onboarding.CompleteInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Complete(ctx, profileID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
