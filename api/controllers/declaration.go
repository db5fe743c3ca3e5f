package controllers

import (
	"net/http"

	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/api/validators"
	"github.com/pitb-dev/wwh-gateway/internal/identity"
	"github.com/pitb-dev/wwh-gateway/internal/registration"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

// GetDeclaration returns the declaration record for the current user.
func GetDeclaration(resolver identity.Service, svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID, err := resolveCurrentPersonalID(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.FetchDeclaration(r.Context(), personalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// SubmitDeclaration uploads the signed declaration image.
func SubmitDeclaration(resolver identity.Service, svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID, err := resolveCurrentPersonalID(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := validators.ParseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upload, err := validators.RequireFormFile(r, "declaration")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SubmitDeclaration(r.Context(), personalID, *upload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}
