package services

import "errors"

// Stable error kinds surfaced to controllers. Wrap with fmt.Errorf("...: %w")
// so callers can match with errors.Is; anything else maps to a 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
