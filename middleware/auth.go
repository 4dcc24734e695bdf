package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rashidq/logistics-portal/internal/auth"
)

// ContextUserID is the Gin context key holding the authenticated user id.
const ContextUserID = "user_id"

// AuthMiddleware validates the Bearer token on protected routes and sets
// ContextUserID for handlers. Missing, malformed, or unverifiable tokens
// get a generic 401; the response never says which check failed.
func AuthMiddleware(tokens *auth.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) == len(bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		token := authHeader[len(bearerPrefix):]

		userID, err := tokens.Verify(token)
		if err != nil {
			if logger != nil {
				logger.Debug("Token verification failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware.
func UserIDFromContext(c *gin.Context) (int, bool) {
	val, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := val.(int)
	return id, ok
}
