// Package common defines shared constants and sentinel errors used across
// the server and client layers of authkeeper. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Input did not pass credential validation; details travel with the
	// concrete *validation error value.
	ErrValidation = errors.New("validation error")

	// Login errors. They are intentionally distinct.
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")

	// Token lifecycle errors.
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrInvalidationFailed = errors.New("token invalidation failed")
)
