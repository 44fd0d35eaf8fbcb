package customer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	customerRepo "mistriconnect/database/repository/customer"
	"mistriconnect/models"
	"mistriconnect/services/booking"
	"mistriconnect/utils"
)

// Service owns customer accounts and profiles.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Customer, string, error)
	Login(ctx context.Context, email, password string) (*models.Customer, string, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	UpdateProfile(ctx context.Context, id, username, email, phoneNumber string) error
}

// RegisterInput carries a new customer registration.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// DefaultCustomerService implements Service.
type DefaultCustomerService struct {
	Repo customerRepo.Repository
}

func (svc *DefaultCustomerService) Register(ctx context.Context, input RegisterInput) (*models.Customer, string, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.PhoneNumber == "" {
		return nil, "", fmt.Errorf("%w: missing required fields", booking.ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", booking.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	cust := &models.Customer{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
	}
	if err := svc.Repo.Create(ctx, cust); err != nil {
		if errors.Is(err, customerRepo.ErrDuplicate) {
			return nil, "", fmt.Errorf("%w: email already registered", booking.ErrInvalidInput)
		}
		return nil, "", err
	}

	token, err := svc.issueToken(ctx, cust)
	if err != nil {
		return nil, "", err
	}
	return cust, token, nil
}

func (svc *DefaultCustomerService) Login(ctx context.Context, email, password string) (*models.Customer, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", booking.ErrInvalidInput)
	}
	cust, err := svc.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customerRepo.ErrNotFound) {
			return nil, "", booking.ErrUnauthorized
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)); err != nil {
		return nil, "", booking.ErrUnauthorized
	}

	token, err := svc.issueToken(ctx, cust)
	if err != nil {
		return nil, "", err
	}
	return cust, token, nil
}

func (svc *DefaultCustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	cust, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s", booking.ErrNotFound, id)
		}
		return nil, err
	}
	return cust, nil
}

func (svc *DefaultCustomerService) UpdateProfile(ctx context.Context, id, username, email, phoneNumber string) error {
	if username == "" || email == "" || phoneNumber == "" {
		return fmt.Errorf("%w: missing required fields", booking.ErrInvalidInput)
	}
	err := svc.Repo.UpdateProfile(ctx, id, username, email, phoneNumber)
	if errors.Is(err, customerRepo.ErrNotFound) {
		return fmt.Errorf("%w: customer %s", booking.ErrNotFound, id)
	}
	return err
}

func (svc *DefaultCustomerService) issueToken(ctx context.Context, cust *models.Customer) (string, error) {
	token, err := utils.GenerateToken(cust.ID, utils.RoleCustomer, utils.AuthTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := svc.Repo.SetTokenHash(ctx, cust.ID, tokenHash); err != nil {
		return "", err
	}
	cacheKey := utils.AuthCachePrefix + utils.RoleCustomer + ":" + cust.ID
	utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL)
	cust.TokenHash = tokenHash
	return token, nil
}
