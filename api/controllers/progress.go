package controllers

import (
	"net/http"

	"github.com/pitb-dev/wwh-gateway/api/middleware"
	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/internal/progress"
	"github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

type progressResponse struct {
	Personal    bool `json:"personal"`
	Employment  bool `json:"employment"`
	Hostel      bool `json:"hostel"`
	Documents   bool `json:"documents"`
	Declaration bool `json:"declaration"`
}

// GetProgress returns the five stage-completion flags, recomputed from
// backend state on every call.
func GetProgress(svc progress.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnauthorized, "missing user"))
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, progressResponse{
			Personal:    snapshot.Personal.Filled(),
			Employment:  snapshot.Employment.Filled(),
			Hostel:      snapshot.Hostel.Filled(),
			Documents:   snapshot.Documents.Filled(),
			Declaration: snapshot.Declaration.Filled(),
		})
	}
}
