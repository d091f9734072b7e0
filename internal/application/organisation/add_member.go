package organisation

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// AddMemberInput names the organisation and the user to add, both as UUIDs.
type AddMemberInput struct {
	OrgID  string `json:"orgId" validate:"required,uuid"`
	UserID string `json:"userId" validate:"required,uuid"`
}

// AddMember adds an existing user to an existing organisation. Nothing is
// written when either side is missing.
type AddMember struct {
	orgs  ports.OrganisationRepository
	users ports.UserRepository
}

// NewAddMember wires the add-member use case.
func NewAddMember(orgs ports.OrganisationRepository, users ports.UserRepository) *AddMember {
	return &AddMember{orgs: orgs, users: users}
}

// Execute returns ErrOrganisationNotFound or ErrUserNotFound when a side is
// missing. Adding an existing member is a no-op.
func (uc *AddMember) Execute(ctx context.Context, input AddMemberInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	orgID, err := domain.ParseOrganisationID(input.OrgID)
	if err != nil {
		return domerrors.NewValidationError("orgId", `"orgId" must be a valid GUID`)
	}
	userID, err := domain.ParseUserID(input.UserID)
	if err != nil {
		return domerrors.NewValidationError("userId", `"userId" must be a valid GUID`)
	}
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return domerrors.ErrOrganisationNotFound
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	return uc.orgs.AddMember(ctx, org.ID, user.ID)
}
