package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Body is the envelope of every API response.
type Body struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status code.
// It sets Content-Type to application/json; charset=utf-8 if not already set.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes 200 {"status":"success","message":...}.
func Success(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Body{Status: StatusSuccess, Message: message})
}

// Error writes {"status":"error","message":...} with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Body{Status: StatusError, Message: message})
}

// WriteError renders err. Domain errors keep their message and map their kind
// to a status code; anything else is reported as a server error.
func WriteError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		Error(w, StatusFromKind(de.Kind), de.Message)
		return
	}
	Error(w, http.StatusInternalServerError, "Server error: "+err.Error())
}

// StatusFromKind maps domain error kinds to HTTP status codes.
func StatusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindStorage:
		return http.StatusServiceUnavailable
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
