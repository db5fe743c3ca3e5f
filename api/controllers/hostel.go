package controllers

import (
	"net/http"

	"github.com/pitb-dev/wwh-gateway/api/middleware"
	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/api/validators"
	"github.com/pitb-dev/wwh-gateway/internal/registration"
	"github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

type hostelRequest struct {
	AppliedDistrict string `json:"applied_district" validate:"required"`
	Institute       string `json:"institute" validate:"required"`
	AppliedDate     string `json:"applied_date"`
	RoomPreference  string `json:"room_preference"`
}

// SubmitHostel writes the hostel-preference section of the personal record.
func SubmitHostel(svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnauthorized, "missing user"))
			return
		}

		var body hostelRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := registration.HostelInput{
			AppliedDistrict: body.AppliedDistrict,
			Institute:       body.Institute,
			AppliedDate:     body.AppliedDate,
			RoomPreference:  body.RoomPreference,
		}
		if err := svc.SubmitHostel(r.Context(), userID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}
