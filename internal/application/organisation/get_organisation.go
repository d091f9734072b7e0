package organisation

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

type getOrganisationInput struct {
	OrgID string `json:"orgId" validate:"required,uuid"`
}

// GetOrganisation fetches one organisation by id.
type GetOrganisation struct {
	orgs ports.OrganisationRepository
}

// NewGetOrganisation wires the get-organisation use case.
func NewGetOrganisation(orgs ports.OrganisationRepository) *GetOrganisation {
	return &GetOrganisation{orgs: orgs}
}

// Execute returns ErrOrganisationNotFound for an unknown id.
func (uc *GetOrganisation) Execute(ctx context.Context, orgID string) (*domain.Organisation, error) {
	if err := validation.Struct(getOrganisationInput{OrgID: orgID}); err != nil {
		return nil, err
	}
	id, err := domain.ParseOrganisationID(orgID)
	if err != nil {
		return nil, domerrors.NewValidationError("orgId", `"orgId" must be a valid GUID`)
	}
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domerrors.ErrOrganisationNotFound
	}
	return org, nil
}
