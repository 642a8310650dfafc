package domain

import "errors"

// Authentication failures.
var (
	ErrAPIKeyMissing      = errors.New("api key missing")
	ErrAPIKeyInvalid      = errors.New("api key invalid")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordNotSet     = errors.New("password not set")
)

// Authorization, lookup and state failures.
var (
	ErrForbidden     = errors.New("access forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrHasDependents = errors.New("has dependent records")
	ErrAlreadyActive = errors.New("account already active")
	ErrValidation    = errors.New("validation failed")
)

// Dependency failures.
var (
	ErrDeliveryFailed    = errors.New("email delivery failed")
	ErrBridgeUnavailable = errors.New("mobile app unavailable")
)
