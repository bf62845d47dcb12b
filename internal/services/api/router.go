// Package api assembles the HTTP surface: routes, role gates and the
// middleware chain. Chain order, outermost first: security headers → audit →
// authentication → router. Audit therefore observes every rejection the
// authentication gate produces; authenticated subjects reach audit completion
// records through the per-request audit slot the gate fills in.
package api

import (
	"net/http"

	"go.uber.org/zap"

	domainauth "github.com/NordCoder/Postbox/internal/auth"
	"github.com/NordCoder/Postbox/internal/middleware"
	authsvc "github.com/NordCoder/Postbox/internal/services/api/auth"
	"github.com/NordCoder/Postbox/internal/services/api/posts"
)

// PublicPaths are reachable without a bearer token.
var PublicPaths = []string{"/login", "/register"}

type Deps struct {
	Log    *zap.Logger
	Tokens *domainauth.TokenService
	Auth   *authsvc.Handler
	Posts  *posts.Handler
}

// NewHandler builds the complete request pipeline.
func NewHandler(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", d.Auth.Login)
	mux.HandleFunc("POST /register", d.Auth.Register)

	mux.HandleFunc("GET /me", d.Auth.Me)
	mux.HandleFunc("GET /posts", d.Posts.List)
	mux.HandleFunc("GET /posts/{id}", d.Posts.Get)
	mux.Handle("POST /posts",
		middleware.RequireRole(d.Log, domainauth.RoleEditor)(http.HandlerFunc(d.Posts.Create)))
	mux.Handle("DELETE /posts/{id}",
		middleware.RequireRole(d.Log, domainauth.RoleAdmin)(http.HandlerFunc(d.Posts.Delete)))

	var h http.Handler = mux
	h = middleware.Authenticate(d.Tokens, PublicPaths, d.Log)(h)
	h = middleware.Audit(d.Log)(h)
	h = middleware.SecurityHeaders(h)
	return h
}
