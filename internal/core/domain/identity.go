package domain

import "time"

// Identity is the caller resolved from a verified access token.
type Identity struct {
	Username  string
	UserID    uint64
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
