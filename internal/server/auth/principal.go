package auth

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Principal is the caller's identity for one request. It is rebuilt from the
// token on every request and never stored.
type Principal struct {
	Login         string
	Role          models.Role
	Apps          []string
	Authenticated bool
}

// PrincipalFromClaims builds an authenticated principal from verified claims.
func PrincipalFromClaims(c *TokenClaims) *Principal {
	return &Principal{
		Login:         c.Login,
		Role:          c.Role,
		Apps:          append([]string(nil), c.Apps...),
		Authenticated: true,
	}
}

// IsAuthenticated is nil-safe.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.Authenticated && p.Login != ""
}

// HasRole reports whether an authenticated principal carries role.
func (p *Principal) HasRole(role models.Role) bool {
	return p.IsAuthenticated() && p.Role == role
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// WithoutPrincipal masks any principal set further up the context chain.
func WithoutPrincipal(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey, (*Principal)(nil))
}

// PrincipalFromContext returns the authenticated principal of ctx, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, _ := ctx.Value(principalKey).(*Principal)
	if !p.IsAuthenticated() {
		return nil, false
	}
	return p, true
}
