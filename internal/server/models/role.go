package models

import "fmt"

// Role is the single role label a user may carry. The set is closed:
// RoleUser (no label) and RoleAdmin.
type Role string

const (
	RoleUser  Role = ""
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a stored or claimed label back onto the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return RoleUser, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	if r == RoleUser {
		return "USER"
	}
	return string(r)
}
