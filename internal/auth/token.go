package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/apperr"
)

// TokenService signs and verifies compact HS256 tokens with a single
// operator-supplied secret. The keys are immutable after construction and
// safe to share across concurrent requests.
type TokenService struct {
	secret []byte
	log    *zap.Logger
	parser *jwt.Parser
}

func NewTokenService(secret []byte, log *zap.Logger) *TokenService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenService{
		secret: secret,
		log:    log,
		// Zero leeway: a token is rejected the second its exp passes.
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Issue serializes and signs claims into a compact token string.
func (s *TokenService) Issue(claims *Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		s.log.Error("token signing failed", zap.Error(err))
		return "", apperr.ErrTokenCreation
	}
	return signed, nil
}

// Verify parses tokenString, checks signature and expiry, and returns the
// embedded claims. Failures map to the public taxonomy; the underlying cause
// is logged here and never crosses to the client.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		s.log.Error("token validation error", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrInvalidToken
	}
	if !tok.Valid {
		s.log.Error("token validation error", zap.Error(fmt.Errorf("token not valid")))
		return nil, apperr.ErrInvalidToken
	}
	return claims, nil
}
