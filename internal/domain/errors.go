package domain

import "errors"

// Error kinds returned by the lifecycle engine and repositories. Callers
// classify failures with errors.Is; the HTTP layer maps each kind to a
// status code.
var (
	// ErrNotFound indicates a referenced car, booking or user id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDateRange indicates a malformed date or an end date before the start date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrPolicyViolation indicates the request breaks a rental policy, e.g. the
	// duration falls outside the car's rental window or the car is unavailable.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrForbidden indicates the actor does not own the resource being mutated.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a concurrent mutation lost the race, e.g. a second
	// approval observing a car that is no longer available.
	ErrConflict = errors.New("conflict")
)
