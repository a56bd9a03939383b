// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleCustomer is assigned to every account created through signup.
	RoleCustomer Role = "customer"
	// RoleAdmin grants access to the admin panel.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
