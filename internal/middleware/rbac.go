package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/apperr"
	"github.com/NordCoder/Postbox/internal/auth"
)

// RequireRole admits the request only when the context claims satisfy at
// least one of the given roles. Missing claims mean the route was wired
// without a preceding Authenticate stage; that is a hard failure, not a
// bypass.
func RequireRole(log *zap.Logger, roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.FromContext(r.Context())
			if !ok {
				log.Error("role gate reached without claims in context",
					zap.String("path", r.URL.Path))
				apperr.WriteError(w, apperr.Unauthorized("Not authenticated"))
				return
			}
			if !auth.SatisfiesAny(claims, roles...) {
				apperr.WriteError(w, apperr.Forbidden("Requires "+roleNames(roles)+" role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleNames(roles []auth.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, " or ")
}
