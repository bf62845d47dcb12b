package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/auth"
)

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
	}), called
}

func requestWithRoles(roles ...string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	claims := &auth.Claims{Roles: roles}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

func TestRequireRoleNoClaims(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(zap.NewNop(), auth.RoleEditor)(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.False(t, *called)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "Not authenticated")
}

func TestRequireRoleForbidden(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(zap.NewNop(), auth.RoleEditor)(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestWithRoles("user"))

	require.False(t, *called)
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), "Requires editor role")
}

func TestRequireRoleSatisfied(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(zap.NewNop(), auth.RoleEditor)(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestWithRoles("editor"))

	require.True(t, *called)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRoleAdminSuperset(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(zap.NewNop(), auth.RoleEditor)(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestWithRoles("admin"))

	require.True(t, *called)
}

func TestRequireRoleAnyNamesAllRoles(t *testing.T) {
	next, _ := okHandler()
	h := RequireRole(zap.NewNop(), auth.RoleEditor, auth.RoleAdmin)(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestWithRoles("user"))

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), "Requires editor or admin role")
}
