package customerRepo

import (
	"context"
	"errors"

	"mistriconnect/models"
)

// Sentinel errors surfaced by customer repositories.
var (
	ErrNotFound  = errors.New("customer not found")
	ErrDuplicate = errors.New("customer already exists")
)

// Repository defines methods for customer data access.
type Repository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	UpdateProfile(ctx context.Context, id, username, email, phoneNumber string) error
	SetTokenHash(ctx context.Context, id, tokenHash string) error
}
