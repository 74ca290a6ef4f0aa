package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	userRepo "voyago/database/repository/user"
	"voyago/utils"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"code":    utils.CodeUnauthorized,
		"message": message,
	})
}

// JWTAuthMiddleware authenticates requests with a Bearer token. The token
// hash is checked against the auth cache first and the user record on a
// miss; cache hits never touch the database. When roles are given, the
// token's role claim must match one of them.
func JWTAuthMiddleware(users userRepo.UserRepository, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing or malformed Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		if len(allowed) > 0 && !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"code":    utils.CodeUnauthorized,
				"message": "insufficient permissions",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)

		cachedHash, err := utils.GetCachedTokenHash(c.Request.Context(), userID)
		if err == nil && cachedHash != "" {
			if cachedHash != computedHash {
				abortUnauthorized(c, "token has been revoked")
				return
			}
			c.Set("userID", userID)
			c.Set("role", role)
			c.Next()
			return
		}

		// Cache miss or cache failure; fall back to the user record.
		account, err := users.GetByIDWithProjection(userID, bson.M{"id": 1, "token_hash": 1, "role": 1})
		if err != nil || account == nil {
			abortUnauthorized(c, "account not found")
			return
		}
		if account.TokenHash == "" || account.TokenHash != computedHash {
			abortUnauthorized(c, "token has been revoked")
			return
		}
		if err := utils.CacheTokenHash(c.Request.Context(), userID, computedHash); err != nil {
			utils.GetLogger().Warn("failed to refresh auth cache")
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}
