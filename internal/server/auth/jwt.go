// Package auth issues and validates session tokens, hashes credentials and
// carries the per-request Principal.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS512

// Claims is the signed payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Apps string `json:"apps"`
}

// TokenClaims is the verified, decoded content of a token.
type TokenClaims struct {
	ID        string
	Login     string
	Role      models.Role
	Apps      []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies session tokens with one process-wide HMAC
// key. It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenCodec(secretKey []byte, validityDuration time.Duration) *TokenCodec {
	return &TokenCodec{secret: secretKey, duration: validityDuration, now: time.Now}
}

// Duration is the validity window of every issued token.
func (c *TokenCodec) Duration() time.Duration {
	return c.duration
}

// Issue signs a token for login valid from now until now+Duration().
func (c *TokenCodec) Issue(login string, role models.Role, apps []string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(signingMethod, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.duration)),
		},
		Role: string(role),
		Apps: strings.Join(apps, models.GrantDelimiter),
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Parse verifies the signature, then the expiry, and only then decodes the
// claims. Expired tokens yield common.ErrTokenExpired, everything else that
// fails yields an error wrapping common.ErrInvalidToken.
func (c *TokenCodec) Parse(tokenString string) (*TokenClaims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	// jwt accepts a token whose expiry equals the current second.
	if !claims.ExpiresAt.After(c.now()) {
		return nil, common.ErrTokenExpired
	}

	return decodeClaims(claims)
}

// IsValid reports whether Parse would succeed.
func (c *TokenCodec) IsValid(tokenString string) bool {
	_, err := c.Parse(tokenString)
	return err == nil
}

func decodeClaims(claims *Claims) (*TokenClaims, error) {
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", common.ErrInvalidToken)
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	apps := []string{}
	if claims.Apps != "" {
		apps = strings.Split(claims.Apps, models.GrantDelimiter)
	}

	tc := &TokenClaims{
		ID:        claims.ID,
		Login:     claims.Subject,
		Role:      role,
		Apps:      apps,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		tc.IssuedAt = claims.IssuedAt.Time
	}
	return tc, nil
}
