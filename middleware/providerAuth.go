package middleware

import (
	"context"
	"log"

	providerRepo "homely/database/repository/provider"
	"homely/models"
	"homely/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthProviderMiddleware authenticates provider sessions, mirroring the
// customer flow against the provider collection.
func JWTAuthProviderMiddleware(providers providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		providerID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || providerID == "" || role != models.RoleProvider {
			abortUnauthorized(c)
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + providerID

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = authCache.Expire(ctx, cacheKey, authCacheTTL).Err()
					c.Set("providerID", providerID)
					c.Next()
					return
				}
				abortUnauthorized(c)
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: error retrieving auth cache key: %v. Falling back to DB lookup.", err)
			}
		}

		prov, err := providers.GetByID(providerID)
		if err != nil || prov == nil || prov.TokenHash != computedHash {
			abortUnauthorized(c)
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, authCacheTTL).Err()
		}

		c.Set("providerID", providerID)
		c.Next()
	}
}
