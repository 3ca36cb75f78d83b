package domain

import "errors"

// Sentinel error kinds surfaced by the service layer. Handlers translate
// these into HTTP status codes; callers match with errors.Is.
var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the actor lacks the role required for the
	// operation (e.g. a third party approving someone else's borrow).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState indicates a precondition on current status was
	// violated, such as borrowing an already-borrowed item or reviewing
	// a borrow that has not been returned.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation indicates malformed input.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates an atomic status update lost a race with a
	// concurrent writer and no rows matched the expected state.
	ErrConflict = errors.New("conflict")
)
