package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/amirhosseinghanipour/userorg/internal/application/auth"
	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// MsgEmailInUse is returned when a signup reuses a registered email.
const MsgEmailInUse = "Email already in use"

const maxSignupBody = 1 << 20

var errMalformedBody = errors.New("malformed request body")

// UniqueEmailGate rejects a signup whose email is already registered before
// the handler runs. The store constraint still decides races.
type UniqueEmailGate struct {
	users ports.UserRepository
}

func NewUniqueEmailGate(users ports.UserRepository) *UniqueEmailGate {
	return &UniqueEmailGate{users: users}
}

// Check validates a signup body and returns ErrDuplicateEmail if its email is taken.
func (g *UniqueEmailGate) Check(ctx context.Context, body []byte) error {
	var in auth.RegisterUserInput
	if err := json.Unmarshal(body, &in); err != nil {
		return errMalformedBody
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	existing, err := g.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domerrors.ErrDuplicateEmail
	}
	return nil
}

func (g *UniqueEmailGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxSignupBody))
		_ = r.Body.Close()
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}
		err = g.Check(r.Context(), body)
		var ve *domerrors.ValidationError
		switch {
		case err == nil:
			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r)
		case errors.Is(err, errMalformedBody):
			WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		case errors.As(err, &ve):
			WriteValidationError(w, ve)
		case errors.Is(err, domerrors.ErrDuplicateEmail):
			WriteError(w, http.StatusUnprocessableEntity, "email_in_use", MsgEmailInUse)
		default:
			WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		}
	})
}
