// Package entity contains the core business objects of the project.
package entity

import "strings"

// Role represents the type of account a user holds in the marketplace.
type Role string

const (
	// RoleBuyer (COMPRADOR) browses listings and keeps favorites.
	RoleBuyer Role = "COMPRADOR"
	// RoleSeller (VENDEDOR) owns projects and properties.
	RoleSeller Role = "VENDEDOR"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a raw role string (any casing) into a Role.
// The second return value reports whether the input mapped to a known role.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}
