package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
)

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type userJSON struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type organisationJSON struct {
	OrgID       string  `json:"orgId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toUserJSON(u domain.PublicUser) userJSON {
	return userJSON{
		UserID:    u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

func toOrganisationJSON(o *domain.Organisation) organisationJSON {
	return organisationJSON{OrgID: o.ID.String(), Name: o.Name, Description: o.Description}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, envelope{Status: "success", Message: message, Data: data})
}

// writeErr shares the middleware error shape so a rejection reads the same
// whichever layer produced it.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	middleware.WriteError(w, code, errCode, message)
}

// writeDomainErr maps application errors to HTTP. Anything unclassified is
// logged and reported as a bare 500.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	var ve *domerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.WriteValidationError(w, ve)
	case errors.Is(err, domerrors.ErrDuplicateEmail), errors.Is(err, domerrors.ErrConstraintViolation):
		writeErr(w, http.StatusUnprocessableEntity, ErrCodeEmailInUse, "Email already in use")
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeUserNotFound, "User not found")
	case errors.Is(err, domerrors.ErrOrganisationNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeOrganisationMissing, "Organisation not found")
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "Not found")
	case errors.Is(err, domerrors.ErrAuthenticationFailed):
		writeErr(w, http.StatusUnauthorized, ErrCodeAuthFailed, "Authentication failed")
	case errors.Is(err, domerrors.ErrMissingToken),
		errors.Is(err, domerrors.ErrInvalidToken),
		errors.Is(err, domerrors.ErrExpiredToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized access. Please log in.")
	default:
		log.Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return false
	}
	return true
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeErr(w, http.StatusNotFound, ErrCodeNotFound, "Route not found")
}

// Root answers GET /.
func Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "API is running..."})
}
