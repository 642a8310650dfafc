package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type tokenClaims struct {
	PublicID string `json:"public_id"`
	jwt.RegisteredClaims
}

// TokenService signs HS256 tokens carrying a principal's public id. The token
// purpose travels in the audience claim.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService. A nil clock means time.Now.
func NewTokenService(secret string, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: []byte(secret), now: now}
}

func (s *TokenService) Issue(publicID string, purpose domain.TokenPurpose) (string, error) {
	if publicID == "" {
		return "", errors.New("issue token: empty public id")
	}

	now := s.now().UTC()
	claims := tokenClaims{
		PublicID: publicID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{string(purpose)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(purpose.TTL())),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Validate(token string, purpose domain.TokenPurpose) (string, error) {
	if token == "" {
		return "", domain.ErrTokenMissing
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(string(purpose)),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "", domain.ErrTokenInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrTokenExpired
	default:
		return "", domain.ErrTokenInvalid
	}

	if !parsed.Valid || claims.PublicID == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.PublicID, nil
}
