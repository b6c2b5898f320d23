// Package common defines shared constants and sentinel errors used across
// Postwall components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration / activation errors.
	ErrUserExists            = errors.New("user with this email or nickname already exists")
	ErrInvalidActivationLink = errors.New("incorrect activation link")

	// Login errors. Kept distinct to aid client messaging; the transport
	// layer maps both to the same response class.
	ErrUserNotFound  = errors.New("this user doesn't exist")
	ErrWrongPassword = errors.New("wrong password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
