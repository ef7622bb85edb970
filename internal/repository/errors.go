package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateProviderID is returned when a provider-issued id is already
	// bound to another account
	ErrDuplicateProviderID = errors.New("provider identity already bound to an account")

	// ErrDuplicateDisplayName is returned when a profile display name is already taken
	ErrDuplicateDisplayName = errors.New("display name already taken")

	// ErrDuplicatePrimaryEmail is returned when a profile primary email is already taken
	ErrDuplicatePrimaryEmail = errors.New("primary email already taken")

	// ErrDuplicateToken is returned when trying to create a token with an existing hash
	ErrDuplicateToken = errors.New("token with this hash already exists")
)
