package controllers

import (
	"net/http"

	"github.com/pitb-dev/wwh-gateway/api/middleware"
	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/internal/identity"
	"github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

type identityResponse struct {
	PersonalID int64 `json:"personal_id"`
}

// resolveCurrentPersonalID derives the personal id for the authenticated user.
// Guardian, declaration, and attachment resources are keyed by this id, so
// every handler touching them resolves it first.
func resolveCurrentPersonalID(r *http.Request, resolver identity.Service) (int64, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return 0, errors.New(errors.CodeUnauthorized, "missing user")
	}
	return resolver.Resolve(r.Context(), userID)
}

// ResolveIdentity returns the server-assigned personal id for the current
// user, creating the backing record when none exists yet.
func ResolveIdentity(resolver identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnauthorized, "missing user"))
			return
		}

		personalID, err := resolver.Resolve(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, identityResponse{PersonalID: personalID})
	}
}
