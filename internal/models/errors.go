package models

import "errors"

// Domain errors for account and profile operations. Handlers map these to
// HTTP statuses with errors.Is; everything else is a 500.
var (
	// ErrUnauthorized is returned when the request carries no caller identity.
	ErrUnauthorized = errors.New("caller identity is required")

	// ErrProfileNotFound is returned when the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists is returned when the caller already owns a profile.
	ErrProfileExists = errors.New("profile already exists for this account")

	// ErrNotProfileOwner is returned when a caller mutates a profile owned by
	// someone else.
	ErrNotProfileOwner = errors.New("profile is owned by another account")

	// ErrInvalidArgument is returned on malformed input, like an empty search
	// term or a picture upload without a file.
	ErrInvalidArgument = errors.New("invalid argument")
)
