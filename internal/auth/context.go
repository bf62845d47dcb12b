package auth

import "context"

type ctxKey int

const claimsKey ctxKey = 1

// WithClaims attaches claims to ctx for the remainder of the request.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// FromContext returns the claims attached by the authentication middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}
