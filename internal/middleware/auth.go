// Package middleware holds the request pipeline stages: security headers,
// audit logging, bearer-token authentication and role gating. Stages compose
// as func(http.Handler) http.Handler and each request flows through them on
// its own goroutine with no shared mutable state.
package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/apperr"
	"github.com/NordCoder/Postbox/internal/auth"
)

const bearerPrefix = "Bearer "

// TokenVerifier is the slice of TokenService the gate needs.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// Authenticate verifies the bearer token on every request whose path is not
// in publicPaths and attaches the resulting claims to the request context.
// Requests without a Bearer credential, or with a token that fails
// verification, are rejected with 401 before any downstream handler runs.
func Authenticate(verifier TokenVerifier, publicPaths []string, log *zap.Logger) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if verifier == nil {
				log.Error("token verifier not wired into authentication middleware")
				apperr.WriteError(w, apperr.ErrMissingAuthService)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				apperr.WriteError(w, apperr.Unauthorized("Missing or invalid Authorization header"))
				return
			}

			claims, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				apperr.WriteError(w, apperr.Unauthorized("Invalid token"))
				return
			}

			log.Info("authentication successful", zap.String("sub", claims.Subject))
			setAuditSubject(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
