package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrganisationID is a value object for organisation identity.
type OrganisationID struct{ uuid.UUID }

// NewOrganisationID creates a new OrganisationID from uuid.
func NewOrganisationID(id uuid.UUID) OrganisationID { return OrganisationID{UUID: id} }

// ParseOrganisationID parses the canonical string form.
func ParseOrganisationID(s string) (OrganisationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return OrganisationID{}, err
	}
	return NewOrganisationID(id), nil
}

// String returns the canonical string form.
func (o OrganisationID) String() string { return o.UUID.String() }

// Organisation is a named group of users. Users belong via memberships.
type Organisation struct {
	ID          OrganisationID
	Name        string
	Description *string
	CreatedAt   time.Time
}

// DefaultOrganisationName is the name of the organisation provisioned at signup.
func DefaultOrganisationName(firstName string) string {
	return firstName + "'s Organisation"
}

// Membership links a user to an organisation. It has no identity of its own.
type Membership struct {
	OrganisationID OrganisationID
	UserID         UserID
	CreatedAt      time.Time
}
