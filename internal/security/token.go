package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetTokenTTL is how long a password reset token stays redeemable.
const ResetTokenTTL = time.Hour

// SessionClaims is the payload of a self-contained session token. The csrf
// value is echoed back by clients on state-changing requests.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	CSRF   string `json:"csrf,omitempty"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token carrying the user's identity
// and an absolute expiry.
func GenerateSessionToken(secret string, userID string, email string, csrf string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		CSRF:   csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies signature and expiry and returns the claims.
// Callers must treat every failure identically; the error carries no
// distinction between structural, signature, and expiry problems.
func ParseSessionToken(tokenStr string, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.Email == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GenerateResetToken returns a URL-safe random token with 32 bytes of
// entropy, suitable for single-use password reset links.
func GenerateResetToken() (string, error) {
	return randomToken(32)
}

// GenerateCSRFToken returns a random anti-forgery value bound into the
// session token at issuance.
func GenerateCSRFToken() (string, error) {
	return randomToken(16)
}

func randomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
