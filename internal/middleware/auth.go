package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/security"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserKey   = "current_user"
	ContextClaimsKey = "session_claims"
)

// UserLoader resolves the user a verified session token refers to.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// Auth verifies the bearer session token and loads the current user. Every
// failure mode gets the same 401 body so callers cannot probe which check
// tripped.
func Auth(secret string, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseSessionToken(tokenStr, secret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextClaimsKey, *claims)
		c.Set(ContextUserKey, user)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
}

// CurrentUser returns the user Auth stored on the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// SessionClaims returns the verified claims Auth stored on the context.
func SessionClaims(c *gin.Context) (security.SessionClaims, bool) {
	val, exists := c.Get(ContextClaimsKey)
	if !exists {
		return security.SessionClaims{}, false
	}
	claims, ok := val.(security.SessionClaims)
	return claims, ok
}
