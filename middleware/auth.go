package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware guards the stub service's profile routes. The stub does not
// introspect tokens: any non-empty bearer token is accepted and mapped to the
// seeded account, which is enough to exercise the client's credential
// handling. It sets "user_id" in the gin context.
func AuthMiddleware(userID string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) == len(bearerPrefix) {
			if logger != nil {
				logger.Debug("Invalid authorization header")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
