package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/domain"
)

// ProvisionInput is an already-validated signup with the password hashed.
type ProvisionInput struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
}

// ProvisionResult is what one provisioning transaction created.
type ProvisionResult struct {
	User         *domain.User
	Organisation *domain.Organisation
}

// ProvisionUser creates a user, their default organisation and the membership
// between them as one unit. Either all three exist afterwards or none do.
type ProvisionUser struct {
	tx  ports.Transactor
	now func() time.Time
}

// NewProvisionUser builds the use case.
func NewProvisionUser(tx ports.Transactor) *ProvisionUser {
	return &ProvisionUser{tx: tx, now: time.Now}
}

// Execute runs the provisioning transaction.
func (uc *ProvisionUser) Execute(ctx context.Context, input ProvisionInput) (*ProvisionResult, error) {
	now := uc.now().UTC()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Phone:        input.Phone,
		CreatedAt:    now,
	}
	org := &domain.Organisation{
		ID:        domain.NewOrganisationID(uuid.New()),
		Name:      domain.DefaultOrganisationName(input.FirstName),
		CreatedAt: now,
	}
	err := uc.tx.InTx(ctx, func(ctx context.Context, s ports.Stores) error {
		if err := s.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := s.Organisations.Create(ctx, org); err != nil {
			return err
		}
		return s.Organisations.AddMember(ctx, org.ID, user.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	return &ProvisionResult{User: user, Organisation: org}, nil
}
