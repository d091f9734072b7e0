package auth

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// LoginInput is the credential payload for POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login checks credentials and signs an access token.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

// NewLogin wires the login use case.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

// Execute returns ErrUserNotFound for an unknown email and
// ErrAuthenticationFailed for a wrong password.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrAuthenticationFailed
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, User: user.Public()}, nil
}
