package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/store"
	"github.com/gauthierbraillon/ytf/internal/video"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// unsavedBody is returned when an entry was created in memory but could not
// be persisted.
type unsavedBody struct {
	Error string `json:"error"`
	Entry any    `json:"entry"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeServiceError maps domain errors to status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *entry.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, video.ErrInvalidURL):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeCreated answers a create request. A persistence failure still echoes
// the entry so the caller can see what was lost.
func (s *Server) writeCreated(w http.ResponseWriter, created any, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, created)
	case store.IsPersistence(err):
		s.logger.Error("entry not saved", "error", err)
		writeJSON(w, http.StatusInternalServerError, unsavedBody{
			Error: "entry was recorded but could not be saved: " + err.Error(),
			Entry: created,
		})
	default:
		s.writeServiceError(w, err)
	}
}
