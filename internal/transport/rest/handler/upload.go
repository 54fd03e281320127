package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"examforge/internal/model"
	"examforge/internal/service"
)

// maxUploadMemory bounds the in-memory part of multipart parsing;
// larger files spill to temp storage.
const maxUploadMemory = 32 << 20

// UploadHandler handles asset upload endpoints
type UploadHandler struct {
	uploadSvc *service.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadSvc *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload handles POST /v1/drafts/{draftId}/assets/{slot}
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	slot := model.AssetSlot(mux.Vars(r)["slot"])
	if slot != model.SlotPrimary && slot != model.SlotThumbnail {
		writeError(w, http.StatusBadRequest, "unknown asset slot")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	asset, err := h.uploadSvc.Upload(r.Context(), draftID, slot, header.Filename, contentType, header.Size, file)
	if err != nil {
		var rejected *service.UploadRejectedError
		var failed *service.UploadError
		switch {
		case errors.As(err, &rejected):
			writeError(w, http.StatusBadRequest, rejected.Error())
		case errors.As(err, &failed):
			writeError(w, http.StatusBadGateway, failed.Error())
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, asset)
}
