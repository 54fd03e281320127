package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"examforge/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service failures onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, "draft not found")
	case errors.Is(err, service.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, "submission already in flight")
	case errors.Is(err, service.ErrNotEditable), errors.Is(err, service.ErrWrongPhase):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
