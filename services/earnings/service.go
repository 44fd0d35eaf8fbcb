package earnings

import (
	"context"
	"errors"
	"fmt"

	earningsRepo "mistriconnect/database/repository/earnings"
	"mistriconnect/models"
	"mistriconnect/services/booking"
)

// MonthSummary is the boundary view of one monthly record: the month is
// rendered as its human-readable label here and nowhere deeper.
type MonthSummary struct {
	Month         string  `json:"month"` // e.g. "March 2025"
	TotalEarned   float64 `json:"totalEarned"`
	CompletedJobs int     `json:"completedJobs"`
}

// MonthDetail adds the per-job contributions.
type MonthDetail struct {
	MonthSummary
	Jobs []models.JobEarning `json:"jobs"`
}

// Service answers earnings queries for providers.
type Service interface {
	GetMonth(ctx context.Context, providerID, monthLabel string) (*MonthSummary, error)
	GetMonthJobs(ctx context.Context, providerID, monthLabel string) (*MonthDetail, error)
	ListMonths(ctx context.Context, providerID string) ([]MonthSummary, error)
}

// DefaultEarningsService implements Service.
type DefaultEarningsService struct {
	Repo earningsRepo.Repository
}

func (svc *DefaultEarningsService) GetMonth(ctx context.Context, providerID, monthLabel string) (*MonthSummary, error) {
	record, err := svc.fetch(ctx, providerID, monthLabel)
	if err != nil {
		return nil, err
	}
	summary := summarize(*record)
	return &summary, nil
}

func (svc *DefaultEarningsService) GetMonthJobs(ctx context.Context, providerID, monthLabel string) (*MonthDetail, error) {
	record, err := svc.fetch(ctx, providerID, monthLabel)
	if err != nil {
		return nil, err
	}
	return &MonthDetail{
		MonthSummary: summarize(*record),
		Jobs:         record.Jobs,
	}, nil
}

// ListMonths returns summaries in chronological month order.
func (svc *DefaultEarningsService) ListMonths(ctx context.Context, providerID string) ([]MonthSummary, error) {
	records, err := svc.Repo.ListMonths(ctx, providerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]MonthSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, summarize(record))
	}
	return summaries, nil
}

func (svc *DefaultEarningsService) fetch(ctx context.Context, providerID, monthLabel string) (*models.MonthlyEarnings, error) {
	month, err := models.ParseMonthLabel(monthLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrInvalidInput, err)
	}
	record, err := svc.Repo.GetMonth(ctx, providerID, month)
	if err != nil {
		if errors.Is(err, earningsRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: no earnings for %s", booking.ErrNotFound, monthLabel)
		}
		return nil, err
	}
	return record, nil
}

func summarize(record models.MonthlyEarnings) MonthSummary {
	return MonthSummary{
		Month:         record.MonthKey().Label(),
		TotalEarned:   record.TotalEarned,
		CompletedJobs: len(record.Jobs),
	}
}
