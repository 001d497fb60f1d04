// Package common defines shared sentinel errors and small utilities used
// across the storefront and auth layers. Callers should use errors.Is to
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

	// Input validation errors.
	ErrMissingField = errors.New("missing required field")
	ErrValidation   = errors.New("validation error")

	// Auth flow errors. ErrorInvalidCredentials deliberately covers both
	// unknown email and wrong password, so callers cannot tell them apart.
	ErrorEmailExists        = errors.New("email already registered")
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Access token errors. All three collapse to "unauthorized" at the
	// edge but stay distinguishable for logging and tests.
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")

	// Refresh token lifecycle. A token that never existed, expired, or was
	// revoked yields the same error.
	ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")
)
