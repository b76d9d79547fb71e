package grpc

import (
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/api"
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Access is the requirement a method places on the caller.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

// GateState tracks one request through the gate.
type GateState int

const (
	StateUnauthenticated GateState = iota
	StateTokenPresentUnverified
	StateVerified
	StateRejected
)

func (s GateState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateTokenPresentUnverified:
		return "token_present"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// DefaultRules is the access table of the userkeeper service. Methods not
// listed need an authenticated caller.
var DefaultRules = map[string]Access{
	api.MethodPing:           AccessPublic,
	api.MethodSignup:         AccessPublic,
	api.MethodLogin:          AccessPublic,
	api.MethodUpdatePassword: AccessAuthenticated,
	api.MethodMe:             AccessAuthenticated,
	api.MethodCreateApp:      AccessAdmin,
	api.MethodDeleteApp:      AccessAdmin,
}

// Decision is the outcome of Gate.Decide. Err is nil when the call may
// proceed; Principal is set whenever a valid token was presented.
type Decision struct {
	State     GateState
	Principal *auth.Principal
	Err       error
}

// Gate authorizes calls from the method name and the authorization value
// alone. It keeps no state between calls.
type Gate struct {
	codec *auth.TokenCodec
	rules map[string]Access
}

func NewGate(codec *auth.TokenCodec, rules map[string]Access) *Gate {
	return &Gate{codec: codec, rules: rules}
}

func (g *Gate) access(method string) Access {
	if a, ok := g.rules[method]; ok {
		return a
	}
	return AccessAuthenticated
}

// Decide runs the per-request state machine. Public methods always proceed;
// a valid token on them still yields a principal. Elsewhere a missing or
// invalid token is common.ErrorUnauthenticated (wrapping the token error when
// there is one) and an insufficient role is common.ErrorForbidden.
func (g *Gate) Decide(method, authorization string) Decision {
	required := g.access(method)

	token, ok := BearerToken(authorization)
	if !ok {
		if required == AccessPublic {
			return Decision{State: StateUnauthenticated}
		}
		return Decision{State: StateRejected, Err: common.ErrorUnauthenticated}
	}

	// StateTokenPresentUnverified
	claims, err := g.codec.Parse(token)
	if err != nil {
		if required == AccessPublic {
			return Decision{State: StateUnauthenticated}
		}
		return Decision{State: StateRejected, Err: &tokenError{cause: err}}
	}

	p := auth.PrincipalFromClaims(claims)
	if required == AccessAdmin && !p.HasRole(models.RoleAdmin) {
		return Decision{State: StateRejected, Principal: p, Err: common.ErrorForbidden}
	}
	return Decision{State: StateVerified, Principal: p}
}

// BearerToken extracts the token from an "authorization" value. The scheme
// is matched case-insensitively.
func BearerToken(authorization string) (string, bool) {
	prefix := common.BearerPrefix
	if len(authorization) <= len(prefix) || !strings.EqualFold(authorization[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(prefix):])
	return token, token != ""
}

// tokenError is an unauthenticated rejection caused by a bad token.
type tokenError struct {
	cause error
}

func (e *tokenError) Error() string { return common.ErrorUnauthenticated.Error() + ": " + e.cause.Error() }

func (e *tokenError) Unwrap() []error { return []error{common.ErrorUnauthenticated, e.cause} }
