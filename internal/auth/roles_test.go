package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	cases := map[string]Role{
		"admin":     RoleAdmin,
		"ADMIN":     RoleAdmin,
		"Editor":    RoleEditor,
		"editor":    RoleEditor,
		"user":      RoleUser,
		"":          RoleUser,
		"moderator": RoleUser, // unknown names fall back to least privilege
	}
	for in, want := range cases {
		require.Equal(t, want, RoleFromString(in), "input %q", in)
	}
}

func TestRoleString(t *testing.T) {
	require.Equal(t, "user", RoleUser.String())
	require.Equal(t, "editor", RoleEditor.String())
	require.Equal(t, "admin", RoleAdmin.String())
}

func claimsWithRoles(roles ...string) *Claims {
	return &Claims{Roles: roles}
}

func TestSatisfies(t *testing.T) {
	require.True(t, Satisfies(claimsWithRoles("admin"), RoleEditor), "admin satisfies every role")
	require.True(t, Satisfies(claimsWithRoles("admin"), RoleAdmin))
	require.True(t, Satisfies(claimsWithRoles("editor"), RoleEditor))
	require.True(t, Satisfies(claimsWithRoles("user", "editor"), RoleEditor))

	require.False(t, Satisfies(claimsWithRoles("user"), RoleAdmin))
	require.False(t, Satisfies(claimsWithRoles("user"), RoleEditor))
	require.False(t, Satisfies(claimsWithRoles(), RoleUser), "empty role list satisfies nothing")

	// Unknown strings map to user, so they satisfy only RoleUser.
	require.True(t, Satisfies(claimsWithRoles("moderator"), RoleUser))
	require.False(t, Satisfies(claimsWithRoles("moderator"), RoleEditor))
}

func TestSatisfiesAny(t *testing.T) {
	require.True(t, SatisfiesAny(claimsWithRoles("editor"), RoleAdmin, RoleEditor))
	require.False(t, SatisfiesAny(claimsWithRoles("user"), RoleAdmin, RoleEditor))
	require.False(t, SatisfiesAny(claimsWithRoles("user")))
}
