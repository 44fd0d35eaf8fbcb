package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "mistriconnect/database/repository/provider"
	"mistriconnect/models"
	"mistriconnect/services/booking"
)

// Service owns provider accounts, their trade list and the availability
// surface. Slot commits go through the same ledger the booking
// orchestrator uses, so pre-blocked slots and accepted jobs can never
// collide.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Provider, string, error)
	Login(ctx context.Context, email, password string) (*models.Provider, string, error)
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	UpdateProfile(ctx context.Context, id string, input ProfileInput) error
	Search(ctx context.Context, serviceType, area string) ([]models.Provider, error)
	AddServiceType(ctx context.Context, id, serviceType string) error
	RemoveServiceType(ctx context.Context, id, serviceType string) error
	BlockSlot(ctx context.Context, id, date, slot string) error
	IsSlotAvailable(ctx context.Context, id, date, slot string) (bool, error)
}

// RegisterInput carries a new provider registration.
type RegisterInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber string  `json:"phoneNumber"`
	ServiceType string  `json:"serviceType"`
	Area        string  `json:"area"`
	Price       float64 `json:"price"`
}

// ProfileInput carries mutable profile fields.
type ProfileInput struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	Area        string  `json:"area"`
	Price       float64 `json:"price"`
}

// DefaultProviderService implements Service.
type DefaultProviderService struct {
	Repo providerRepo.Repository
}

func (svc *DefaultProviderService) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: provider %s", booking.ErrNotFound, id)
		}
		return nil, err
	}
	return provider, nil
}

func (svc *DefaultProviderService) UpdateProfile(ctx context.Context, id string, input ProfileInput) error {
	if input.Name == "" || input.PhoneNumber == "" || input.Area == "" {
		return fmt.Errorf("%w: missing required fields", booking.ErrInvalidInput)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", booking.ErrInvalidInput)
	}
	err := svc.Repo.UpdateProfile(ctx, id, input.Name, input.PhoneNumber, input.Area, input.Price)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return fmt.Errorf("%w: provider %s", booking.ErrNotFound, id)
	}
	return err
}

// Search returns providers offering the service type in the area. An empty
// result is a NotFound business outcome, matching the customer search page.
func (svc *DefaultProviderService) Search(ctx context.Context, serviceType, area string) ([]models.Provider, error) {
	if serviceType == "" || area == "" {
		return nil, fmt.Errorf("%w: service type and area are required", booking.ErrInvalidInput)
	}
	providers, err := svc.Repo.Search(ctx, serviceType, area)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no providers for %s in %s", booking.ErrNotFound, serviceType, area)
	}
	return providers, nil
}

func (svc *DefaultProviderService) AddServiceType(ctx context.Context, id, serviceType string) error {
	if !models.IsKnownServiceType(serviceType) {
		return fmt.Errorf("%w: unknown service type %q", booking.ErrInvalidInput, serviceType)
	}
	err := svc.Repo.AddServiceType(ctx, id, serviceType)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return fmt.Errorf("%w: provider %s", booking.ErrNotFound, id)
	}
	return err
}

func (svc *DefaultProviderService) RemoveServiceType(ctx context.Context, id, serviceType string) error {
	err := svc.Repo.RemoveServiceType(ctx, id, serviceType)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return fmt.Errorf("%w: provider %s", booking.ErrNotFound, id)
	}
	return err
}

// BlockSlot lets a provider pre-commit a slot without a job. Blocked slots
// live in the same committed set accepted jobs use (they just have no job
// pointing at them).
func (svc *DefaultProviderService) BlockSlot(ctx context.Context, id, date, slot string) error {
	if !models.IsValidSlot(slot) {
		return fmt.Errorf("%w: unknown slot %q", booking.ErrInvalidInput, slot)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("%w: bad date %q", booking.ErrInvalidInput, date)
	}
	err := svc.Repo.CommitSlot(ctx, id, date, slot)
	switch {
	case errors.Is(err, providerRepo.ErrSlotTaken):
		return fmt.Errorf("%w: %s %s", booking.ErrSlotConflict, date, slot)
	case errors.Is(err, providerRepo.ErrNotFound):
		return fmt.Errorf("%w: provider %s", booking.ErrNotFound, id)
	}
	return err
}

func (svc *DefaultProviderService) IsSlotAvailable(ctx context.Context, id, date, slot string) (bool, error) {
	if !models.IsValidSlot(slot) {
		return false, fmt.Errorf("%w: unknown slot %q", booking.ErrInvalidInput, slot)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return false, fmt.Errorf("%w: bad date %q", booking.ErrInvalidInput, date)
	}
	return svc.Repo.IsSlotAvailable(ctx, id, date, slot)
}
