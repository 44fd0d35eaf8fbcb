package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "mistriconnect/database/repository/provider"
	"mistriconnect/models"
)

// Create admits a new job request as pending after the provider's slot
// ledger confirms no conflict. The availability check here is advisory: the
// authoritative guard runs again inside the accept transaction.
func (svc *DefaultBookingService) Create(ctx context.Context, input CreateInput) (*models.JobRequest, error) {
	if input.CustomerID == "" || input.ProviderID == "" || input.Date == "" || input.Slot == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if !models.IsValidSlot(input.Slot) {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, input.Slot)
	}
	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, input.Date)
	}

	if _, err := svc.Providers.GetByID(ctx, input.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: provider %s", ErrNotFound, input.ProviderID)
		}
		return nil, err
	}

	available, err := svc.Providers.IsSlotAvailable(ctx, input.ProviderID, input.Date, input.Slot)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: %s %s", ErrSlotConflict, input.Date, input.Slot)
	}

	job := &models.JobRequest{
		CustomerID:  input.CustomerID,
		ProviderID:  input.ProviderID,
		Description: input.Description,
		Date:        input.Date,
		Slot:        input.Slot,
		Price:       input.Price,
	}
	if err := svc.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}
