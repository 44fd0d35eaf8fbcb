package notification

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"mistriconnect/services/tasks"
	"mistriconnect/utils"
)

// BookingStatusPayload describes a booking decision to notify about.
type BookingStatusPayload = tasks.BookingStatusPayload

// Service dispatches booking notifications.
type Service interface {
	NotifyBookingStatus(ctx context.Context, payload BookingStatusPayload) error
}

// QueueNotificationService enqueues notifications onto the asynq queue for
// background delivery, keeping booking requests fast.
type QueueNotificationService struct {
	Client *asynq.Client
}

// NewQueueNotificationService returns a Service backed by the given asynq client.
func NewQueueNotificationService(client *asynq.Client) *QueueNotificationService {
	return &QueueNotificationService{Client: client}
}

func (s *QueueNotificationService) NotifyBookingStatus(ctx context.Context, payload BookingStatusPayload) error {
	task, err := tasks.NewBookingStatusTask(payload)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task); err != nil {
		return err
	}
	return nil
}

// Deliver performs the actual notification. Push/email transports live
// outside this service; delivery here is recorded in the structured log so
// the worker path stays observable end to end.
func Deliver(ctx context.Context, payload BookingStatusPayload) error {
	utils.GetLogger().Info("booking status notification",
		zap.String("jobId", payload.JobID),
		zap.String("customerId", payload.CustomerID),
		zap.String("providerId", payload.ProviderID),
		zap.String("status", payload.Status),
		zap.String("date", payload.Date),
		zap.String("slot", payload.Slot),
	)
	return nil
}
