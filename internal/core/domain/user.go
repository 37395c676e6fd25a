package domain

import (
	"errors"
	"time"
)

// Role is the privilege level stored on a user record. The zero value is a
// plain student.
type Role string

const (
	RoleNone       Role = ""
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidEmail = errors.New("email is required")
)

// ParseRole accepts the stored spellings of a role. "student" and "none" are
// read as RoleNone.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "none", "student":
		return RoleNone, nil
	case string(RoleInstructor):
		return RoleInstructor, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return RoleNone, ErrInvalidRole
	}
}

// User is the persisted account keyed by email. Profile holds whatever extra
// fields the client supplied at registration.
type User struct {
	ID        string         `json:"_id"`
	Email     string         `json:"email"`
	Name      string         `json:"name,omitempty"`
	Photo     string         `json:"photo,omitempty"`
	Role      Role           `json:"role,omitempty"`
	Profile   map[string]any `json:"profile,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// HasRole reports whether the stored role is exactly r.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role == r
}
