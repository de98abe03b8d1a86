package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfoliopal/api/internal/service"
)

// RequireAdmin allows only the configured admin identity through. Must run
// after Auth.
func RequireAdmin(gate service.AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		if !gate.IsAdmin(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Next()
	}
}
