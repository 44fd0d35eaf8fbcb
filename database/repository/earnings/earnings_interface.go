package earningsRepo

import (
	"context"
	"errors"

	"mistriconnect/models"
)

// ErrNotFound is returned when no earnings record exists for a month.
var ErrNotFound = errors.New("earnings record not found")

// Repository defines methods for the per-provider monthly earnings ledger.
type Repository interface {
	// PostJob adds a job's amount to the provider's record for the given
	// month, creating the record on first write. Posting the same jobID
	// twice is a no-op: the jobs list is keyed by jobID, never blindly
	// appended, so orchestrator retries cannot double-count.
	PostJob(ctx context.Context, providerID string, month models.Month, jobID string, amount float64) error
	// GetMonth fetches one month's record.
	GetMonth(ctx context.Context, providerID string, month models.Month) (*models.MonthlyEarnings, error)
	// ListMonths returns all records for a provider in chronological order.
	ListMonths(ctx context.Context, providerID string) ([]models.MonthlyEarnings, error)
}
