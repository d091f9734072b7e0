package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return NewUserID(id), nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a registered account. PasswordHash never holds plaintext.
type User struct {
	ID           UserID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
}

// PublicUser is the User without its credential.
type PublicUser struct {
	ID        UserID
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}
