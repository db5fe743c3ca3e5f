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

type personalRequest struct {
	Name              string `json:"name" validate:"required"`
	FatherName        string `json:"fname" validate:"required"`
	PermanentAddress  string `json:"paddress" validate:"required"`
	CurrentAddress    string `json:"caddress"`
	Phone             string `json:"phone_no" validate:"omitempty,pkphone"`
	Mobile            string `json:"mobile" validate:"required,pkphone"`
	Email             string `json:"email" validate:"omitempty,email"`
	CNIC              string `json:"cnic" validate:"required,cnic"`
	DateOfBirth       string `json:"dob" validate:"required"`
	IssueDate         string `json:"issue_date"`
	ExpiryDate        string `json:"expiry_date"`
	Disability        string `json:"disability"`
	DisabilityDetails string `json:"disability_details"`
	PlaceOfIssue      string `json:"place_issue"`
	MaritalStatus     string `json:"marital_status"`
}

// GetPersonal returns the current user's personal record for prefill.
func GetPersonal(svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnauthorized, "missing user"))
			return
		}

		record, err := svc.FetchPersonal(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// SubmitPersonal upserts the demographic section of the personal record. The
// request is multipart: scalar fields plus an optional profile photo.
func SubmitPersonal(svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnauthorized, "missing user"))
			return
		}

		if err := validators.ParseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := personalRequest{
			Name:              r.FormValue("name"),
			FatherName:        r.FormValue("fname"),
			PermanentAddress:  r.FormValue("paddress"),
			CurrentAddress:    r.FormValue("caddress"),
			Phone:             r.FormValue("phone_no"),
			Mobile:            r.FormValue("mobile"),
			Email:             r.FormValue("email"),
			CNIC:              r.FormValue("cnic"),
			DateOfBirth:       r.FormValue("dob"),
			IssueDate:         r.FormValue("issue_date"),
			ExpiryDate:        r.FormValue("expiry_date"),
			Disability:        r.FormValue("disability"),
			DisabilityDetails: r.FormValue("disability_details"),
			PlaceOfIssue:      r.FormValue("place_issue"),
			MaritalStatus:     r.FormValue("marital_status"),
		}
		if err := validators.ValidateStruct(body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := validators.FormFile(r, "profile")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := registration.PersonalInput{
			Name:              body.Name,
			FatherName:        body.FatherName,
			PermanentAddress:  body.PermanentAddress,
			CurrentAddress:    body.CurrentAddress,
			Phone:             body.Phone,
			Mobile:            body.Mobile,
			Email:             body.Email,
			CNIC:              body.CNIC,
			DateOfBirth:       body.DateOfBirth,
			IssueDate:         body.IssueDate,
			ExpiryDate:        body.ExpiryDate,
			Disability:        body.Disability,
			DisabilityDetails: body.DisabilityDetails,
			PlaceOfIssue:      body.PlaceOfIssue,
			MaritalStatus:     body.MaritalStatus,
			Profile:           profile,
		}
		if err := svc.SubmitPersonal(r.Context(), userID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}
