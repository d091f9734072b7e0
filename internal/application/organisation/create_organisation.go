package organisation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/application/validation"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
)

// CreateOrganisationInput is the organisation name and optional description.
type CreateOrganisationInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateOrganisation creates an organisation and makes the caller a member of
// it in the same transaction.
type CreateOrganisation struct {
	tx  ports.Transactor
	now func() time.Time
}

// NewCreateOrganisation builds the use case.
func NewCreateOrganisation(tx ports.Transactor) *CreateOrganisation {
	return &CreateOrganisation{tx: tx, now: time.Now}
}

// Execute validates input and writes the organisation with its first member.
func (uc *CreateOrganisation) Execute(ctx context.Context, callerID domain.UserID, input CreateOrganisationInput) (*domain.Organisation, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	org := &domain.Organisation{
		ID:          domain.NewOrganisationID(uuid.New()),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   uc.now().UTC(),
	}
	err := uc.tx.InTx(ctx, func(ctx context.Context, s ports.Stores) error {
		if err := s.Organisations.Create(ctx, org); err != nil {
			return err
		}
		return s.Organisations.AddMember(ctx, org.ID, callerID)
	})
	if err != nil {
		return nil, fmt.Errorf("create organisation: %w", err)
	}
	return org, nil
}
