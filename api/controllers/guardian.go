package controllers

import (
	"net/http"

	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/api/validators"
	"github.com/pitb-dev/wwh-gateway/internal/identity"
	"github.com/pitb-dev/wwh-gateway/internal/registration"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

type guardianRequest struct {
	Name         string `json:"gname" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Address      string `json:"gaddress" validate:"required"`
	Mobile       string `json:"gmobile" validate:"required,pkphone"`
	Occupation   string `json:"goccupation"`
	Email        string `json:"gemail" validate:"omitempty,email"`

	EmergencyName         string `json:"ename" validate:"required"`
	EmergencyRelationship string `json:"erelationship" validate:"required"`
	EmergencyAddress      string `json:"eaddress"`
	EmergencyMobile       string `json:"emobile" validate:"required,pkphone"`
}

// GetGuardian returns the guardian record for prefill.
func GetGuardian(resolver identity.Service, svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID, err := resolveCurrentPersonalID(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.FetchGuardian(r.Context(), personalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// SubmitGuardian upserts the guardian and emergency-contact record.
func SubmitGuardian(resolver identity.Service, svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID, err := resolveCurrentPersonalID(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body guardianRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := registration.GuardianInput{
			Name:                  body.Name,
			Relationship:          body.Relationship,
			Address:               body.Address,
			Mobile:                body.Mobile,
			Occupation:            body.Occupation,
			Email:                 body.Email,
			EmergencyName:         body.EmergencyName,
			EmergencyRelationship: body.EmergencyRelationship,
			EmergencyAddress:      body.EmergencyAddress,
			EmergencyMobile:       body.EmergencyMobile,
		}
		if err := svc.SubmitGuardian(r.Context(), personalID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}
