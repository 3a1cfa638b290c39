// Copyright (c) 2026 Libris. All rights reserved.

package sec

import "fmt"

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: member, issuer, admin. Route gates check membership in
// an explicit required set rather than comparing a numeric hierarchy, so a
// gate for {issuer, admin} cannot accidentally admit a future role.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Library staff: manages books, copies, borrowings, and reservations
	RoleIssuer Role = "issuer"

	// Default role for standard registered users
	RoleMember Role = "member"
)

// ParseRole converts a stored lowercase role string into a [Role].
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleIssuer, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("sec: unknown role %q", s)
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// In reports whether the role is a member of the required set.
func (r Role) In(required ...Role) bool {
	for _, candidate := range required {
		if r == candidate {
			return true
		}
	}
	return false
}
