package apperrors

import "errors"

// Shared error kinds surfaced by the domain services. Handlers map these to
// HTTP status codes; services wrap them with context via fmt.Errorf("%w").
var (
	// ErrNotFound indicates the referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidStateTransition indicates an operation was attempted on an
	// entity that is not in the required source state.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrCapacityExceeded indicates a property's funder roster already meets
	// or exceeds its soft capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
