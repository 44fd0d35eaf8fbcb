package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	jobRepo "mistriconnect/database/repository/job"
	"mistriconnect/models"
	"mistriconnect/utils"
)

// Review attaches a rating and comment to a decided request, then folds the
// rating into the provider's aggregate. Pending requests cannot be reviewed,
// and a request takes at most one review.
func (svc *DefaultBookingService) Review(ctx context.Context, input ReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	job, err := svc.Jobs.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return fmt.Errorf("%w: job request %s", ErrNotFound, input.JobID)
		}
		return err
	}
	if job.CustomerID != input.CustomerID {
		return ErrUnauthorized
	}
	if job.Status == models.StatusPending {
		return fmt.Errorf("%w: job request not yet decided", ErrInvalidTransition)
	}
	if job.Rating != 0 {
		return fmt.Errorf("%w: job request already reviewed", ErrInvalidTransition)
	}

	if err := svc.Jobs.SetReview(ctx, input.JobID, input.Rating, input.Comment); err != nil {
		switch {
		case errors.Is(err, jobRepo.ErrNotFound):
			return fmt.Errorf("%w: job request %s", ErrNotFound, input.JobID)
		case errors.Is(err, jobRepo.ErrNotPending):
			return fmt.Errorf("%w: job request not yet decided", ErrInvalidTransition)
		case errors.Is(err, jobRepo.ErrAlreadyReviewed):
			return fmt.Errorf("%w: job request already reviewed", ErrInvalidTransition)
		default:
			return err
		}
	}

	if err := svc.applyRating(ctx, job.ProviderID, float64(input.Rating)); err != nil {
		// The review itself is saved; the aggregate will catch up on the
		// next one. Surface nothing worse than a log line.
		utils.GetLogger().Warn("failed to update provider aggregate rating",
			zap.String("providerId", job.ProviderID), zap.Error(err))
	}
	return nil
}
