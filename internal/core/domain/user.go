package domain

import "time"

const (
	RoleGuardian = "guardian"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleGuardian, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the system. Emails are stored
// lowercase; comparisons are case-insensitive by construction.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
