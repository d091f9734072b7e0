package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// BcryptHasher implements ports.PasswordHasher using bcrypt. The salt is
// generated per call and embedded in the encoded hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost; out-of-range values
// fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash encodes password with a fresh salt. Input past bcrypt's 72-byte limit
// is reported as a validation error on "password".
func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domerrors.NewValidationError("password", `"password" length must be less than or equal to 72 bytes long`)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)
