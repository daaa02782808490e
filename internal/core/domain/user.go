package domain

import "time"

// UserRole is the application-wide role of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleManager
}

// User represents a user of the application in the domain.
type User struct {
	UserID       int64     `json:"userID"` // Assigned by the store
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"` // Inactive users cannot log in or be assigned deals
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
