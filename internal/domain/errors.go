package domain

import "errors"

var (
	// ErrUnknownEnum is returned when a stored enum string has no known mapping.
	ErrUnknownEnum = errors.New("unknown enum value")

	// ErrInvalidTransition is returned by session status toggles that are not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)
