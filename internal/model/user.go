// Package model defines domain entities for the application.
package model

import "time"

// Role constants for user authorization.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is the verified claim set carried by a session token.
// This is injected into the request context by auth middleware.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// HasRole checks if the identity holds the given role.
// Admin satisfies every role check.
func (i *Identity) HasRole(role string) bool {
	if i.Role == RoleAdmin {
		return true
	}
	return i.Role == role
}
