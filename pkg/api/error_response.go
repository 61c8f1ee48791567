package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adfharrison1/todod/pkg/domain"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(response)
}

// writeError maps err onto a response. Decode errors are echoed to the
// client; anything else is logged and answered with a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var decodeErr *domain.DecodeError
	if errors.As(err, &decodeErr) {
		h.log(r).WithError(err).Warn("Rejected malformed request")
		WriteJSONError(w, decodeErr.Status, decodeErr.Error())
		return
	}

	h.log(r).WithError(err).Error("Storage operation failed")
	WriteJSONError(w, http.StatusInternalServerError, "internal server error")
}
