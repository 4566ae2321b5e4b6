package domain

import "errors"

// Error taxonomy for the credit ledger. Services return these (usually
// wrapped with context via fmt.Errorf and %w); the HTTP layer maps them to
// status codes with errors.Is.
var (
	// ErrValidation covers malformed or out-of-range input. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized means the actor's role does not permit the operation.
	// Surfaced verbatim, checked before validation or storage access.
	ErrUnauthorized = errors.New("role not permitted")

	// ErrNotFound covers unknown customers or transaction references on
	// read-only lookups.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the per-customer write retry budget was exhausted.
	// Nothing was committed, so the caller may safely retry.
	ErrConflict = errors.New("concurrent update conflict")
)
