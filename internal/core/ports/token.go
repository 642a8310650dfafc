package ports

import "github.com/mykinyozi/kinyozi-api/internal/core/domain"

// TokenService issues and validates signed, expiring tokens.
type TokenService interface {
	Issue(publicID string, purpose domain.TokenPurpose) (string, error)
	// Validate returns the embedded public id, or domain.ErrTokenExpired /
	// domain.ErrTokenInvalid.
	Validate(token string, purpose domain.TokenPurpose) (string, error)
}
