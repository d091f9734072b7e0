package ports

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/domain"
)

// UserRepository defines persistence for users. Lookups return nil, nil when absent.
type UserRepository interface {
	// Create fails with ErrConstraintViolation when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// OrganisationRepository defines persistence for organisations and memberships.
type OrganisationRepository interface {
	Create(ctx context.Context, org *domain.Organisation) error
	// AddMember is idempotent: adding an existing member is a no-op.
	AddMember(ctx context.Context, orgID domain.OrganisationID, userID domain.UserID) error
	GetByID(ctx context.Context, orgID domain.OrganisationID) (*domain.Organisation, error)
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Organisation, error)
}

// Stores groups the repositories bound to one connection or transaction.
type Stores struct {
	Users         UserRepository
	Organisations OrganisationRepository
}

// Transactor runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
