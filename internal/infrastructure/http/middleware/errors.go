package middleware

import (
	"encoding/json"
	"net/http"

	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Code       string `json:"code"`
}

// StatusText is the envelope "status" for an HTTP code: client input and
// credential failures read "Bad request", everything else "error".
func StatusText(code int) string {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
		return "Bad request"
	default:
		return "error"
	}
}

// WriteError sends { "status", "message", "statusCode", "code" }.
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorBody{Status: StatusText(code), Message: message, StatusCode: code, Code: errCode})
}

// WriteValidationError sends 422 { "errors": [...], "code": "validation_failed" }.
func WriteValidationError(w http.ResponseWriter, ve *domerrors.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": ve.Fields, "code": "validation_failed"})
}
