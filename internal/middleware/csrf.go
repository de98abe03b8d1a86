package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const csrfHeader = "X-CSRF-Token"

// RequireCSRF enforces the anti-forgery value issued with the session
// token: state-changing requests must echo it in the X-CSRF-Token header.
// Must run after Auth.
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := SessionClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		provided := c.GetHeader(csrfHeader)
		if claims.CSRF == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(claims.CSRF)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "csrf token mismatch"})
			return
		}

		c.Next()
	}
}
