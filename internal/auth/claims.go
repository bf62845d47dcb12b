package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the authenticated identity asserted by a token: subject (user id),
// validity window, a unique token id and the subject's role names. A Claims
// value is never mutated after issue; it lives only inside a signed token and,
// transiently, in one request's context.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// NewClaims builds claims for userID with a fresh jti and the given validity
// window. ttl must be positive so that exp > iat.
func NewClaims(userID string, roles []string, ttl time.Duration) *Claims {
	now := time.Now().UTC()
	return &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
}
