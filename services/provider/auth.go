package provider

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	providerRepo "mistriconnect/database/repository/provider"
	"mistriconnect/models"
	"mistriconnect/services/booking"
	"mistriconnect/utils"
)

// Register creates a provider account and signs it in.
func (svc *DefaultProviderService) Register(ctx context.Context, input RegisterInput) (*models.Provider, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.PhoneNumber == "" || input.Area == "" {
		return nil, "", fmt.Errorf("%w: missing required fields", booking.ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", booking.ErrInvalidInput)
	}
	if !models.IsKnownServiceType(input.ServiceType) {
		return nil, "", fmt.Errorf("%w: unknown service type %q", booking.ErrInvalidInput, input.ServiceType)
	}
	if input.Price <= 0 {
		return nil, "", fmt.Errorf("%w: price must be positive", booking.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	prov := &models.Provider{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		ServiceTypes: []string{input.ServiceType},
		Area:         input.Area,
		Price:        input.Price,
	}
	if err := svc.Repo.Create(ctx, prov); err != nil {
		if errors.Is(err, providerRepo.ErrDuplicate) {
			return nil, "", fmt.Errorf("%w: email already registered", booking.ErrInvalidInput)
		}
		return nil, "", err
	}

	token, err := svc.issueToken(ctx, prov)
	if err != nil {
		return nil, "", err
	}
	return prov, token, nil
}

// Login authenticates a provider and issues a fresh token, invalidating the
// previous one via the stored token hash.
func (svc *DefaultProviderService) Login(ctx context.Context, email, password string) (*models.Provider, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", booking.ErrInvalidInput)
	}
	prov, err := svc.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, "", booking.ErrUnauthorized
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(prov.PasswordHash), []byte(password)); err != nil {
		return nil, "", booking.ErrUnauthorized
	}

	token, err := svc.issueToken(ctx, prov)
	if err != nil {
		return nil, "", err
	}
	return prov, token, nil
}

func (svc *DefaultProviderService) issueToken(ctx context.Context, prov *models.Provider) (string, error) {
	token, err := utils.GenerateToken(prov.ID, utils.RoleProvider, utils.AuthTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := svc.Repo.SetTokenHash(ctx, prov.ID, tokenHash); err != nil {
		return "", err
	}
	// Warm the auth cache so the middleware skips a DB round trip.
	cacheKey := utils.AuthCachePrefix + utils.RoleProvider + ":" + prov.ID
	utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL)
	prov.TokenHash = tokenHash
	return token, nil
}
