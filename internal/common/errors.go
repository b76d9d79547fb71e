// Package common defines shared constants and sentinel errors used across
// the userkeeper server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorAlreadyExists is returned when a login or app name is taken.
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorBadCredentials covers both an unknown login and a wrong password.
	ErrorBadCredentials = errors.New("invalid credentials")

	// ErrorUnauthenticated means the operation needs an identity and none is present.
	ErrorUnauthenticated = errors.New("unauthenticated")

	// ErrorForbidden means the identity is valid but its role is insufficient.
	ErrorForbidden = errors.New("forbidden")

	ErrorInternal = errors.New("internal error")

	// ErrorAdminLoginTaken is returned at startup when the configured admin
	// login belongs to an account without the admin role.
	ErrorAdminLoginTaken = errors.New("admin login is held by a non-admin account")

	// Validation errors.
	ErrorValidation       = errors.New("validation error")
	ErrorInvalidGrantName = errors.New("invalid app name")

	// Token errors. Callers treat both as unauthenticated; they are kept
	// apart so that signature failures can be logged separately.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
