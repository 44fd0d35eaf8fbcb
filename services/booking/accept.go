package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	jobRepo "mistriconnect/database/repository/job"
	schedulerRepo "mistriconnect/database/repository/scheduler"
	"mistriconnect/models"
	"mistriconnect/services/notification"
	"mistriconnect/utils"
)

// Accept drives the booking orchestration: status flip, slot commit and
// earnings post as one transactional unit. On any failure the request stays
// pending and no partial mutation remains observable.
func (svc *DefaultBookingService) Accept(ctx context.Context, jobID, actingProviderID string) (*models.JobRequest, error) {
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
	if job.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: job request is %s", ErrInvalidTransition, job.Status)
	}

	// Earnings bucket by the month of the scheduled date, not of the accept.
	month, err := models.MonthOf(job.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := svc.Scheduler.AcceptBooking(ctx, job, month); err != nil {
		switch {
		case errors.Is(err, schedulerRepo.ErrSlotTaken):
			return nil, fmt.Errorf("%w: %s %s", ErrSlotConflict, job.Date, job.Slot)
		case errors.Is(err, schedulerRepo.ErrNotPending):
			// Lost the race to another decision after our pre-check.
			return nil, fmt.Errorf("%w: job request already decided", ErrInvalidTransition)
		default:
			return nil, err
		}
	}
	job.Status = models.StatusAccepted

	svc.notifyStatus(ctx, job)

	utils.GetLogger().Info("job request accepted",
		zap.String("jobId", job.ID),
		zap.String("providerId", job.ProviderID),
		zap.String("date", job.Date),
		zap.String("slot", job.Slot),
		zap.String("month", month.Label()),
	)
	return job, nil
}

// notifyStatus enqueues a status notification. Delivery is best-effort and
// never fails the booking operation.
func (svc *DefaultBookingService) notifyStatus(ctx context.Context, job *models.JobRequest) {
	if svc.Notifier == nil {
		return
	}
	payload := notification.BookingStatusPayload{
		JobID:      job.ID,
		CustomerID: job.CustomerID,
		ProviderID: job.ProviderID,
		Status:     job.Status,
		Date:       job.Date,
		Slot:       job.Slot,
	}
	if err := svc.Notifier.NotifyBookingStatus(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to enqueue booking notification",
			zap.String("jobId", job.ID), zap.Error(err))
	}
}
