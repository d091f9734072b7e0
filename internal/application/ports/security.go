package ports

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs bearer tokens whose subject is the user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier validates a bearer token and returns its subject.
// Errors are ErrExpiredToken, ErrInvalidToken or ErrConfiguration.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
