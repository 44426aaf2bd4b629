package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/joestump/linkboard/internal/store"
)

// Error codes carried in ErrorResponse.Code.
const (
	codeBadRequest         = "BAD_REQUEST"
	codeValidation         = "VALIDATION_ERROR"
	codeNotFound           = "NOT_FOUND"
	codeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError maps a link store failure onto 400, 404, or 500.
// Only storage failures are logged; the other two are caller mistakes.
func writeStoreError(w http.ResponseWriter, log logrus.FieldLogger, op string, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error(), codeValidation)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "link not found", codeNotFound)
	default:
		log.WithError(err).WithField("op", op).Error("link store failure")
		writeError(w, http.StatusInternalServerError, "storage unavailable", codeStorageUnavailable)
	}
}
