package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customerRepo "mistriconnect/database/repository/customer"
	providerRepo "mistriconnect/database/repository/provider"
	"mistriconnect/utils"
)

// Context keys set by the auth middleware.
const (
	CtxCustomerID = "customerID"
	CtxProviderID = "providerID"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// verifyTokenHash checks the presented token's hash against the cached (or
// stored) hash of the caller's current token, so revoked tokens die even
// before they expire.
func verifyTokenHash(ctx context.Context, role, id, tokenHash string, lookup func(context.Context, string) (string, error)) bool {
	cache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + role + ":" + id

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		return cached == tokenHash
	}

	stored, err := lookup(ctx, id)
	if err != nil || stored == "" {
		return false
	}
	cache.Set(ctx, cacheKey, stored, utils.AuthCacheTTL)
	return stored == tokenHash
}

// JWTAuthCustomerMiddleware resolves and verifies a customer identity.
func JWTAuthCustomerMiddleware(repo customerRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		id, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || role != utils.RoleCustomer {
			abortUnauthorized(c)
			return
		}

		ok := verifyTokenHash(c.Request.Context(), role, id, utils.HashToken(tokenString),
			func(ctx context.Context, id string) (string, error) {
				cust, err := repo.GetByID(ctx, id)
				if err != nil {
					return "", err
				}
				return cust.TokenHash, nil
			})
		if !ok {
			abortUnauthorized(c)
			return
		}

		c.Set(CtxCustomerID, id)
		c.Next()
	}
}

// JWTAuthProviderMiddleware resolves and verifies a provider identity.
func JWTAuthProviderMiddleware(repo providerRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		id, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || role != utils.RoleProvider {
			abortUnauthorized(c)
			return
		}

		ok := verifyTokenHash(c.Request.Context(), role, id, utils.HashToken(tokenString),
			func(ctx context.Context, id string) (string, error) {
				prov, err := repo.GetByID(ctx, id)
				if err != nil {
					return "", err
				}
				return prov.TokenHash, nil
			})
		if !ok {
			abortUnauthorized(c)
			return
		}

		c.Set(CtxProviderID, id)
		c.Next()
	}
}
