package organisation

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
)

// ListOrganisations returns every organisation the caller belongs to.
type ListOrganisations struct {
	orgs ports.OrganisationRepository
}

// NewListOrganisations wires the list-organisations use case.
func NewListOrganisations(orgs ports.OrganisationRepository) *ListOrganisations {
	return &ListOrganisations{orgs: orgs}
}

// Execute returns every organisation callerID belongs to.
func (uc *ListOrganisations) Execute(ctx context.Context, callerID domain.UserID) ([]*domain.Organisation, error) {
	return uc.orgs.ListForUser(ctx, callerID)
}
