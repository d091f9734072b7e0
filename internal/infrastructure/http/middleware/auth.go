package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// Messages returned by AuthValidator.
const (
	MsgTokenRequired = "Access token required!"
	MsgTokenExpired  = "Your session has expired. Please log in again."
	MsgUnauthorized  = "Unauthorized access. Please log in."
)

// AuthValidator checks the bearer token and sets the caller in context (see UserIDFromContext).
type AuthValidator struct {
	verifier ports.TokenVerifier
}

func NewAuthValidator(verifier ports.TokenVerifier) *AuthValidator {
	return &AuthValidator{verifier: verifier}
}

// Authenticate returns the subject of the request's bearer token. The error
// is ErrMissingToken, ErrExpiredToken or ErrInvalidToken.
func (m *AuthValidator) Authenticate(r *http.Request) (domain.UserID, error) {
	header := r.Header.Get("Authorization")
	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if header == "" || token == "" {
		return domain.UserID{}, domerrors.ErrMissingToken
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return domain.UserID{}, domerrors.ErrInvalidToken
	}
	sub, err := m.verifier.Verify(token)
	if err != nil {
		return domain.UserID{}, err
	}
	userID, err := domain.ParseUserID(sub)
	if err != nil {
		return domain.UserID{}, domerrors.ErrInvalidToken
	}
	return userID, nil
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.Authenticate(r)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		case errors.Is(err, domerrors.ErrMissingToken):
			WriteError(w, http.StatusBadRequest, "token_required", MsgTokenRequired)
		case errors.Is(err, domerrors.ErrExpiredToken):
			WriteError(w, http.StatusUnauthorized, "token_expired", MsgTokenExpired)
		case errors.Is(err, domerrors.ErrInvalidToken):
			WriteError(w, http.StatusUnauthorized, "invalid_token", MsgUnauthorized)
		default:
			WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		}
	})
}
