// Package common defines shared constants and sentinel errors used across
// photodesk components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Request-level errors reported by the backend.
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("server unavailable")

	// Credential errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
