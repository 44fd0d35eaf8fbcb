package booking

import "errors"

// Business outcomes surfaced verbatim to callers. Handlers map these to
// HTTP statuses; none of them is retried automatically. Anything else
// escaping this package is an internal storage/transaction failure, which
// the accept transaction guarantees leaves no partial state behind.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("caller does not own this resource")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSlotConflict      = errors.New("slot already booked")
)
