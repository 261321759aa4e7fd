// Package common defines shared constants and sentinel errors used across
// the journal server, its storage adapters and the CLI. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors are rejected at the boundary before any backend call.
	ErrorValidation = errors.New("validation error")

	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorBackendUnavailable covers database, transport and inference
	// service failures. The original cause is logged, never returned to clients.
	ErrorBackendUnavailable = errors.New("backend unavailable")

	// ErrNoEntries is returned when an operation needs at least one entry.
	ErrNoEntries = errors.New("no journal entries")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
