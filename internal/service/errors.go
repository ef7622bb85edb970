package service

import "errors"

// Identity flow errors
var (
	// ErrNotAuthenticated is returned when the link path is entered without an
	// authenticated account. A caller bug, not a user-facing condition.
	ErrNotAuthenticated = errors.New("link requires an authenticated account")

	// ErrProviderConflict is returned when a provider identity is already
	// linked to a different account. Accounts are never merged implicitly.
	ErrProviderConflict = errors.New("provider identity already linked to another account")

	// ErrProfileMissing is returned when an account unexpectedly has no
	// profile. Provisioning always creates one, so this indicates a broken
	// invariant upstream, not a retryable condition.
	ErrProfileMissing = errors.New("account has no profile")

	// ErrInvalidInput is returned for malformed profile field values.
	ErrInvalidInput = errors.New("invalid input")
)
