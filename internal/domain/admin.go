package domain

import "time"

// Admin is an operator account allowed to author and publish news.
type Admin struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Admin roles.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
)

// ValidRoles contains all valid admin roles.
var ValidRoles = []string{RoleSuperAdmin, RoleAdmin}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
