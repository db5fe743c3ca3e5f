package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/api/validators"
	"github.com/pitb-dev/wwh-gateway/internal/identity"
	"github.com/pitb-dev/wwh-gateway/internal/registration"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

type attachmentSlotView struct {
	Slot     string `json:"slot"`
	Uploaded bool   `json:"uploaded"`
	FileName string `json:"file_name,omitempty"`
}

// ListAttachments reports every document slot with its upload state so the
// client can render the checklist without knowing the slot set.
func ListAttachments(resolver identity.Service, svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID, err := resolveCurrentPersonalID(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.FetchAttachments(r.Context(), personalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slots := record.Slots()
		views := make([]attachmentSlotView, 0, len(upstream.SlotNames()))
		for _, name := range upstream.SlotNames() {
			view := attachmentSlotView{Slot: name}
			if value, ok := slots[name]; ok && value != nil && *value != "" {
				view.Uploaded = true
				view.FileName = *value
			}
			views = append(views, view)
		}

		responses.WriteSuccess(w, map[string]any{"attachments": views})
	}
}

// UploadAttachment stores a single document into the named slot.
func UploadAttachment(resolver identity.Service, svc registration.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID, err := resolveCurrentPersonalID(r, resolver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slot := chi.URLParam(r, "slot")

		if err := validators.ParseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upload, err := validators.RequireFormFile(r, "file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UploadAttachment(r.Context(), personalID, slot, *upload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "uploaded", "slot": slot})
	}
}
