package auth

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// RegisterUserInput is the signup payload.
type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,maxbytes=72"`
	Phone     string `json:"phone" validate:"required"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	AccessToken  string
	User         domain.PublicUser
	Organisation *domain.Organisation
}

// RegisterUser signs up a user with a default organisation.
type RegisterUser struct {
	users     ports.UserRepository
	provision *ProvisionUser
	hasher    ports.PasswordHasher
	issuer    ports.TokenIssuer
}

// NewRegisterUser wires the signup use case.
func NewRegisterUser(users ports.UserRepository, provision *ProvisionUser, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterUser {
	return &RegisterUser{users: users, provision: provision, hasher: hasher, issuer: issuer}
}

// Execute validates the payload, provisions the account and signs a token.
// A concurrent signup that slips past the email pre-check fails with
// ErrConstraintViolation from the store.
func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*AuthResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrDuplicateEmail
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	res, err := uc.provision.Execute(ctx, ProvisionInput{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
	})
	if err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(res.User.ID.String())
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, User: res.User.Public(), Organisation: res.Organisation}, nil
}
