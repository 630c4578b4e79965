package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an account that owns todos. PasswordHash is never serialized.
type User struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
