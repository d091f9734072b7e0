package user

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

type getUserInput struct {
	ID string `json:"id" validate:"required,uuid"`
}

// GetUser returns the public view of a user.
type GetUser struct {
	users ports.UserRepository
}

// NewGetUser wires the get-user use case.
func NewGetUser(users ports.UserRepository) *GetUser {
	return &GetUser{users: users}
}

// Execute looks up id, which must be a UUID, and returns ErrUserNotFound
// when no such user exists.
func (uc *GetUser) Execute(ctx context.Context, id string) (domain.PublicUser, error) {
	if err := validation.Struct(getUserInput{ID: id}); err != nil {
		return domain.PublicUser{}, err
	}
	userID, err := domain.ParseUserID(id)
	if err != nil {
		return domain.PublicUser{}, domerrors.NewValidationError("id", `"id" must be a valid GUID`)
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if u == nil {
		return domain.PublicUser{}, domerrors.ErrUserNotFound
	}
	return u.Public(), nil
}
