package jobRepo

import (
	"context"
	"errors"

	"mistriconnect/models"
)

// Sentinel errors surfaced by job request repositories.
var (
	ErrNotFound = errors.New("job request not found")
	// ErrNotPending is returned when a conditional write found the request
	// but its status no longer permits the operation.
	ErrNotPending = errors.New("job request not in required status")
	// ErrAlreadyReviewed is returned when the request already carries a
	// rating.
	ErrAlreadyReviewed = errors.New("job request already reviewed")
)

// Repository defines methods for job request data access. Status guards
// live in the store's filters: a transition write that loses a race simply
// matches nothing and reports ErrNotPending.
type Repository interface {
	Create(ctx context.Context, job *models.JobRequest) error
	GetByID(ctx context.Context, id string) (*models.JobRequest, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.JobRequest, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.JobRequest, error)
	// RejectIfPending flips pending -> rejected; ErrNotPending otherwise.
	RejectIfPending(ctx context.Context, id string) error
	// DeleteIfPending removes the request iff it is still pending.
	DeleteIfPending(ctx context.Context, id string) error
	// SetReview attaches a rating and review iff the request has progressed
	// past pending and has not been reviewed yet. A request is reviewed at
	// most once; ErrAlreadyReviewed otherwise.
	SetReview(ctx context.Context, id string, rating int, review string) error
}
