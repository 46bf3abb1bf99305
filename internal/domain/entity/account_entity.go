package entity

import (
	"strings"
	"time"
)

// Role is the authorization tier carried in every session token.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// ParseRole maps user input to a Role. Empty input defaults to standard;
// "user" is accepted as a legacy alias of standard.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "user":
		return RoleStandard, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

// Account is the aggregate root for identity.
// PasswordHash is a bcrypt hash; the plaintext never reaches this struct.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the canonical form used for storage and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity is the decoded session token. It is trusted as-is for the
// lifetime of the token, so name or role changes show up after re-login.
type Identity struct {
	AccountID string
	Email     string
	Name      string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// HasRole reports whether the identity's role is one of allowed.
func (i Identity) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if i.Role == r {
			return true
		}
	}
	return false
}
