// Package common defines shared constants and sentinel errors used across
// client and server layers of PostGuard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrCredentialMismatch = errors.New("credentials do not match")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidAge         = errors.New("age out of range")
	ErrInvalidEmail       = errors.New("invalid email")

	// Login / session errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Moderation errors.
	ErrClassificationUnavailable = errors.New("classification unavailable")
	ErrEmptyPost                 = errors.New("post text is empty")

	// Export errors.
	ErrExportDisabled = errors.New("export disabled")
)
