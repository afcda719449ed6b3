// Package service issues and verifies caller access tokens.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/soulbound/internal/auth/domain"
	apperrors "github.com/allisson/soulbound/internal/errors"
	"github.com/allisson/soulbound/internal/identity"
)

const tokenIssuer = "soulbound"

// TokenService issues and verifies signed access tokens whose subject is the caller identity.
type TokenService interface {
	// Issue signs a token for the given identity. The identity is normalized first.
	Issue(subject string) (token string, expiresAt time.Time, err error)

	// Verify checks the signature and expiry of a token and returns the caller it names.
	Verify(token string) (*authDomain.Caller, error)
}

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing HS256 tokens with secret.
func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &jwtTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue implements TokenService.
func (s *jwtTokenService) Issue(subject string) (string, time.Time, error) {
	subject = identity.Normalize(subject)
	if !identity.IsUsable(subject) {
		return "", time.Time{}, authDomain.ErrInvalidIdentity
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("token signing secret is not configured")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, expiresAt, nil
}

// Verify implements TokenService.
func (s *jwtTokenService) Verify(tokenString string) (*authDomain.Caller, error) {
	if len(s.secret) == 0 {
		return nil, authDomain.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	subject := identity.Normalize(claims.Subject)
	if !identity.IsUsable(subject) {
		return nil, authDomain.ErrInvalidToken
	}

	return &authDomain.Caller{
		Identity:  subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
