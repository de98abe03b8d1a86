package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AttemptLimiter decides whether another attempt from a client key may
// proceed.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// Throttle rejects requests from over-active client addresses before any
// credentials are examined.
func Throttle(limiter AttemptLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, slow down"})
			return
		}
		c.Next()
	}
}
