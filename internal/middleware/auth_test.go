package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/auth"
)

func newTestChain(t *testing.T, secret string, next http.Handler) http.Handler {
	t.Helper()
	tokens := auth.NewTokenService([]byte(secret), zap.NewNop())
	return Authenticate(tokens, []string{"/login", "/register"}, zap.NewNop())(next)
}

func issueToken(t *testing.T, secret string, roles []string, ttl time.Duration) string {
	t.Helper()
	tokens := auth.NewTokenService([]byte(secret), zap.NewNop())
	tok, err := tokens.Issue(auth.NewClaims("42", roles, ttl))
	require.NoError(t, err)
	return tok
}

func TestAuthenticatePublicPathBypass(t *testing.T) {
	called := false
	h := newTestChain(t, "s3cret", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := auth.FromContext(r.Context())
		require.False(t, ok, "bypassed requests carry no claims")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	require.True(t, called)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	h := newTestChain(t, "s3cret", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "Missing or invalid Authorization header")
}

func TestAuthenticateWrongScheme(t *testing.T) {
	h := newTestChain(t, "s3cret", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	h := newTestChain(t, "s3cret", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "other-secret", []string{"user"}, time.Minute))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "Invalid token")
}

func TestAuthenticateValidTokenAttachesClaims(t *testing.T) {
	var got *auth.Claims
	h := newTestChain(t, "s3cret", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		got = c
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "s3cret", []string{"user"}, time.Minute))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	require.Equal(t, "42", got.Subject)
	require.Equal(t, []string{"user"}, got.Roles)
}

func TestAuthenticateConcurrentSameToken(t *testing.T) {
	h := newTestChain(t, "s3cret", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := auth.FromContext(r.Context())
		require.True(t, ok)
	}))
	token := issueToken(t, "s3cret", []string{"user"}, time.Minute)

	done := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			done <- rr.Code
		}()
	}
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, <-done)
	}
}

func TestAuthenticateNilVerifier(t *testing.T) {
	h := Authenticate(nil, nil, zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.True(t, strings.Contains(rr.Body.String(), "internal error"))
}
