// Package models holds the persisted entities of the identity service.
package models

import (
	"strings"
	"time"
)

// GrantDelimiter separates app names inside the token's apps claim, so it
// may not appear in an app name.
const GrantDelimiter = ","

// User is an account keyed by its immutable login.
type User struct {
	Login        string
	PasswordHash string
	Apps         []string
	Role         Role
	CreatedAt    time.Time
}

// WithoutPassword returns a copy that is safe to hand back to callers.
func (u *User) WithoutPassword() *User {
	c := *u
	c.PasswordHash = ""
	c.Apps = append([]string(nil), u.Apps...)
	return &c
}

// App is an application a user may be granted access to.
type App struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ValidAppName reports whether name can be used as a grant.
func ValidAppName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.Contains(name, GrantDelimiter)
}

// NormalizeGrants drops duplicates while keeping first-seen order.
func NormalizeGrants(apps []string) []string {
	seen := make(map[string]struct{}, len(apps))
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
