package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"examforge/internal/model"
	"examforge/internal/service"
	"examforge/internal/transport/rest/middleware"
)

// SubmitHandler handles submission endpoints
type SubmitHandler struct {
	submitSvc *service.SubmissionService
}

// NewSubmitHandler creates a new submit handler
func NewSubmitHandler(submitSvc *service.SubmissionService) *SubmitHandler {
	return &SubmitHandler{submitSvc: submitSvc}
}

// Submit handles POST /v1/drafts/{draftId}/submit
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	token := middleware.GetBackendToken(r.Context())
	if token == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	outcome, err := h.submitSvc.Submit(r.Context(), token, draftID)
	if err != nil {
		var serr *service.StructuralError
		if errors.As(err, &serr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"questionIndex": serr.QuestionIndex,
				"reason":        serr.Reason,
			})
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// ListRecords handles GET /v1/submissions
func (h *SubmitHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetAdminID(r.Context())
	if adminID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.submitSvc.ListRecords(r.Context(), adminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []*model.SubmissionRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// GetOutcome handles GET /v1/drafts/{draftId}/outcome
func (h *SubmitHandler) GetOutcome(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	record, err := h.submitSvc.GetOutcome(r.Context(), draftID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no submission recorded for this draft")
		return
	}

	writeJSON(w, http.StatusOK, record)
}
