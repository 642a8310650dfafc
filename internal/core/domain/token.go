package domain

import "time"

// TokenPurpose is carried in the token audience so one purpose can never be
// replayed as another.
type TokenPurpose string

const (
	PurposeShopSession     TokenPurpose = "shop"
	PurposeEmployeeSession TokenPurpose = "employee"
	PurposeEmployeeSetup   TokenPurpose = "employee-setup"
	PurposePasswordReset   TokenPurpose = "password-reset"
)

const (
	SessionTTL       = 120 * time.Minute
	PasswordResetTTL = 30 * time.Minute
	EmployeeSetupTTL = 7 * 24 * time.Hour
)

// TTL returns the lifetime of tokens issued for p.
func (p TokenPurpose) TTL() time.Duration {
	switch p {
	case PurposePasswordReset:
		return PasswordResetTTL
	case PurposeEmployeeSetup:
		return EmployeeSetupTTL
	default:
		return SessionTTL
	}
}
