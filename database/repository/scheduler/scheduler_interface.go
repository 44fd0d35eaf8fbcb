package schedulerRepo

import (
	"context"
	"errors"

	"mistriconnect/models"
)

// Sentinel errors surfaced by the accept transaction.
var (
	// ErrNotPending means the request was no longer pending (or vanished)
	// when the transaction tried to flip it.
	ErrNotPending = errors.New("job request no longer pending")
	// ErrSlotTaken means the (date, slot) pair was already committed in the
	// provider's slot ledger.
	ErrSlotTaken = errors.New("slot already committed")
)

// Repository owns the cross-collection accept operation. Accepting a job is
// also the reservation write: the status flip, the slot commit, and the
// earnings post are one domain event, never three independent calls.
type Repository interface {
	// AcceptBooking atomically flips the job request to accepted, commits
	// its (date, slot) pair in the provider's slot ledger, and posts the
	// price to the provider's earnings record for the month of the job's
	// scheduled date. Either all three mutations become visible or none do.
	AcceptBooking(ctx context.Context, job *models.JobRequest, month models.Month) error
}
