package booking

import (
	"context"
	"errors"
	"fmt"

	jobRepo "mistriconnect/database/repository/job"
	"mistriconnect/models"
)

// Reject flips a pending request to rejected. A pure status change: no slot
// is committed and no earnings are posted.
func (svc *DefaultBookingService) Reject(ctx context.Context, jobID, actingProviderID string) (*models.JobRequest, error) {
	job, err := svc.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: job request %s", ErrNotFound, jobID)
		}
		return nil, err
	}
	if job.ProviderID != actingProviderID {
		return nil, ErrUnauthorized
	}

	if err := svc.Jobs.RejectIfPending(ctx, jobID); err != nil {
		switch {
		case errors.Is(err, jobRepo.ErrNotFound):
			return nil, fmt.Errorf("%w: job request %s", ErrNotFound, jobID)
		case errors.Is(err, jobRepo.ErrNotPending):
			return nil, fmt.Errorf("%w: job request is %s", ErrInvalidTransition, job.Status)
		default:
			return nil, err
		}
	}
	job.Status = models.StatusRejected

	svc.notifyStatus(ctx, job)
	return job, nil
}

// Cancel removes a request on the customer's behalf, permitted only while
// it is still pending.
func (svc *DefaultBookingService) Cancel(ctx context.Context, jobID, actingCustomerID string) error {
	job, err := svc.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return fmt.Errorf("%w: job request %s", ErrNotFound, jobID)
		}
		return err
	}
	if job.CustomerID != actingCustomerID {
		return ErrUnauthorized
	}

	if err := svc.Jobs.DeleteIfPending(ctx, jobID); err != nil {
		switch {
		case errors.Is(err, jobRepo.ErrNotFound):
			return fmt.Errorf("%w: job request %s", ErrNotFound, jobID)
		case errors.Is(err, jobRepo.ErrNotPending):
			return fmt.Errorf("%w: only pending requests can be cancelled", ErrInvalidTransition)
		default:
			return err
		}
	}
	return nil
}

func (svc *DefaultBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.JobRequest, error) {
	return svc.Jobs.ListByCustomer(ctx, customerID)
}

func (svc *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.JobRequest, error) {
	return svc.Jobs.ListByProvider(ctx, providerID)
}
