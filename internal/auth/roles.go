package auth

import "strings"

// Role is the closed permission tier set. Admin is a superset of every other
// tier.
type Role int

const (
	RoleUser Role = iota
	RoleEditor
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEditor:
		return "editor"
	default:
		return "user"
	}
}

// RoleFromString maps a role name case-insensitively. Unknown names fall back
// to the least-privileged RoleUser rather than failing; callers that want to
// reject unknown roles must do so before issuing claims.
func RoleFromString(s string) Role {
	switch strings.ToLower(s) {
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	default:
		return RoleUser
	}
}

// Satisfies reports whether any role in claims maps to required or to
// RoleAdmin. Empty role lists satisfy nothing.
func Satisfies(c *Claims, required Role) bool {
	for _, name := range c.Roles {
		r := RoleFromString(name)
		if r == required || r == RoleAdmin {
			return true
		}
	}
	return false
}

// SatisfiesAny reports whether Satisfies holds for at least one entry.
func SatisfiesAny(c *Claims, required ...Role) bool {
	for _, r := range required {
		if Satisfies(c, r) {
			return true
		}
	}
	return false
}
