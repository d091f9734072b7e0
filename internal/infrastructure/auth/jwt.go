package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
)

// DefaultTokenTTL is the fixed validity window of an access token.
const DefaultTokenTTL = 90 * 24 * time.Hour

// TokenService implements ports.TokenIssuer and ports.TokenVerifier with HS256
// and a single shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) Option {
	return func(t *TokenService) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// WithClock sets the time source used for both issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(t *TokenService) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTokenService returns a token service. An empty secret is accepted here;
// every Issue and Verify call then fails with ErrConfiguration.
func NewTokenService(secret string, opts ...Option) *TokenService {
	t := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TokenService) Issue(userID string) (string, error) {
	if len(t.secret) == 0 {
		return "", domerrors.ErrConfiguration
	}
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenService) Verify(tokenString string) (string, error) {
	if len(t.secret) == 0 {
		return "", domerrors.ErrConfiguration
	}
	if tokenString == "" {
		return "", domerrors.ErrInvalidToken
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domerrors.ErrExpiredToken
		}
		return "", domerrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domerrors.ErrInvalidToken
	}
	return claims.Subject, nil
}

var (
	_ ports.TokenIssuer   = (*TokenService)(nil)
	_ ports.TokenVerifier = (*TokenService)(nil)
)
