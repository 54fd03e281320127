package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"examforge/internal/model"
	"examforge/internal/service"
	"examforge/internal/transport/rest/middleware"
)

// DraftHandler handles draft wizard endpoints
type DraftHandler struct {
	draftSvc *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftSvc *service.DraftService) *DraftHandler {
	return &DraftHandler{draftSvc: draftSvc}
}

// CreateDraftRequest is the request body for starting a session
type CreateDraftRequest struct {
	Kind     model.ContentKind `json:"kind"`
	LessonID string            `json:"lessonId"`
}

// Create handles POST /v1/drafts
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetAdminID(r.Context())
	if adminID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.draftSvc.Create(r.Context(), adminID, req.Kind, req.LessonID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, draft)
}

// Get handles GET /v1/drafts/{draftId}
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	draft, err := h.draftSvc.Get(r.Context(), draftID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// SetParent handles PUT /v1/drafts/{draftId}/parent
func (h *DraftHandler) SetParent(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var fields model.ParentFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.draftSvc.SetParent(r.Context(), draftID, fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// AdvanceResponse reports the phase-gate result. Fields is non-empty
// exactly when the draft stayed in the parent-fields phase.
type AdvanceResponse struct {
	Draft  *model.CompositeContentDraft `json:"draft"`
	Fields map[string]string            `json:"fields,omitempty"`
}

// Advance handles POST /v1/drafts/{draftId}/advance
func (h *DraftHandler) Advance(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	draft, fieldErrs, err := h.draftSvc.Advance(r.Context(), draftID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, AdvanceResponse{Draft: draft, Fields: fieldErrs})
		return
	}

	writeJSON(w, http.StatusOK, AdvanceResponse{Draft: draft})
}

// Retreat handles POST /v1/drafts/{draftId}/retreat
func (h *DraftHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	draft, err := h.draftSvc.Retreat(r.Context(), draftID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// AddQuestion handles POST /v1/drafts/{draftId}/questions
func (h *DraftHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	draft, err := h.draftSvc.AddQuestion(r.Context(), draftID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// RemoveQuestion handles DELETE /v1/drafts/{draftId}/questions/{index}
func (h *DraftHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	draft, err := h.draftSvc.RemoveQuestion(r.Context(), draftID, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// UpdateQuestion handles PUT /v1/drafts/{draftId}/questions/{index}
func (h *DraftHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	var q model.QuestionDraft
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.draftSvc.UpdateQuestion(r.Context(), draftID, index, q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// AddOption handles POST /v1/drafts/{draftId}/questions/{index}/options
func (h *DraftHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	draft, err := h.draftSvc.AddOption(r.Context(), draftID, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// RemoveOption handles DELETE /v1/drafts/{draftId}/questions/{index}/options/{option}
func (h *DraftHandler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}
	option, err := strconv.Atoi(mux.Vars(r)["option"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid option index")
		return
	}

	draft, err := h.draftSvc.RemoveOption(r.Context(), draftID, index, option)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}
