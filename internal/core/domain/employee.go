package domain

import "time"

// CredentialState describes whether an account can log in.
type CredentialState string

const (
	CredentialUninitialized CredentialState = "uninitialized"
	CredentialActive        CredentialState = "active"
)

// Employee belongs to exactly one Shop. PasswordHash stays nil until the
// employee completes onboarding.
type Employee struct {
	ID           uint
	PublicID     string
	ShopID       uint
	ShopPublicID string
	FirstName    string
	LastName     string
	Email        string
	Role         string
	PasswordHash *string
	Salary       *int
	Phone        string
	Active       bool
	CreatedAt    time.Time
}

// State is derived from the password column; there is no way back to
// CredentialUninitialized once a hash is stored.
func (e *Employee) State() CredentialState {
	if e.PasswordHash == nil || *e.PasswordHash == "" {
		return CredentialUninitialized
	}
	return CredentialActive
}
