package booking

import (
	"context"

	jobRepo "mistriconnect/database/repository/job"
	providerRepo "mistriconnect/database/repository/provider"
	schedulerRepo "mistriconnect/database/repository/scheduler"
	"mistriconnect/models"
	"mistriconnect/services/notification"
)

// CreateInput carries a customer's booking proposal.
type CreateInput struct {
	CustomerID  string  `json:"customerId"`
	ProviderID  string  `json:"providerId"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Slot        string  `json:"slot"`
	Price       float64 `json:"price"`
}

// ReviewInput carries a customer's post-completion review.
type ReviewInput struct {
	JobID      string `json:"jobId"`
	CustomerID string `json:"-"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Service owns the job request lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.JobRequest, error)
	Accept(ctx context.Context, jobID, actingProviderID string) (*models.JobRequest, error)
	Reject(ctx context.Context, jobID, actingProviderID string) (*models.JobRequest, error)
	Cancel(ctx context.Context, jobID, actingCustomerID string) error
	Review(ctx context.Context, input ReviewInput) error
	ListForCustomer(ctx context.Context, customerID string) ([]models.JobRequest, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.JobRequest, error)
}

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Jobs      jobRepo.Repository
	Providers providerRepo.Repository
	Scheduler schedulerRepo.Repository
	Notifier  notification.Service
}
