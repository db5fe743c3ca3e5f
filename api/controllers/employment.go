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

type employmentRequest struct {
	Education  string `json:"education" validate:"required"`
	Discipline string `json:"discipline"`
	Salary     string `json:"salary" validate:"required"`
	PostHeld   string `json:"post_held" validate:"required"`
	JobJoining string `json:"job_joining"`
	JobType    string `json:"job_type" validate:"required"`
	BPS        string `json:"bps"`
	JobDetails string `json:"job_details"`
	JobRoutine string `json:"job_routine"`
	ShiftStart string `json:"ss_time"`
	ShiftEnd   string `json:"se_time"`
}

// SubmitEmployment writes the employment section of the personal record.
func SubmitEmployment(svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnauthorized, "missing user"))
			return
		}

		var body employmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := registration.EmploymentInput{
			Education:  body.Education,
			Discipline: body.Discipline,
			Salary:     body.Salary,
			PostHeld:   body.PostHeld,
			JobJoining: body.JobJoining,
			JobType:    body.JobType,
			BPS:        body.BPS,
			JobDetails: body.JobDetails,
			JobRoutine: body.JobRoutine,
			ShiftStart: body.ShiftStart,
			ShiftEnd:   body.ShiftEnd,
		}
		if err := svc.SubmitEmployment(r.Context(), userID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}
