package providerRepo

import (
	"context"
	"errors"

	"mistriconnect/models"
)

// Sentinel errors surfaced by provider repositories.
var (
	ErrNotFound  = errors.New("provider not found")
	ErrSlotTaken = errors.New("slot already committed")
	ErrDuplicate = errors.New("provider already exists")
)

// Repository defines methods for provider data access, including the
// provider's embedded slot ledger and aggregate rating.
type Repository interface {
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByEmail retrieves a provider by its email address.
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	// UpdateProfile patches mutable profile fields.
	UpdateProfile(ctx context.Context, id string, name, phoneNumber, area string, price float64) error
	// SetTokenHash stores the hash of the provider's current auth token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	// Search returns providers offering a service type within an area.
	Search(ctx context.Context, serviceType, area string) ([]models.Provider, error)
	// AddServiceType registers an additional trade for the provider.
	AddServiceType(ctx context.Context, id, serviceType string) error
	// RemoveServiceType removes a trade from the provider.
	RemoveServiceType(ctx context.Context, id, serviceType string) error

	// IsSlotAvailable reports whether (date, slot) is free for the provider.
	IsSlotAvailable(ctx context.Context, id, date, slot string) (bool, error)
	// CommitSlot atomically re-checks and inserts the (date, slot) pair,
	// returning ErrSlotTaken if it is already committed. The guard lives in
	// the store's filter, not in application code.
	CommitSlot(ctx context.Context, id, date, slot string) error
	// ApplyRating folds a new rating into the provider's aggregate in one
	// server-side update: an unrated provider (aggregate 0) takes the
	// rating as-is, otherwise the aggregate becomes the average of the old
	// value and the new rating. Concurrent folds never lose an update.
	ApplyRating(ctx context.Context, id string, rating float64) error
}
