package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeBookingStatus is the task type for booking decision notifications.
const TypeBookingStatus = "booking:status"

// BookingStatusPayload is the queued notification payload.
type BookingStatusPayload struct {
	JobID      string `json:"jobId"`
	CustomerID string `json:"customerId"`
	ProviderID string `json:"providerId"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
}

// NewBookingStatusTask builds an asynq task carrying the payload.
func NewBookingStatusTask(payload BookingStatusPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingStatus, b), nil
}
