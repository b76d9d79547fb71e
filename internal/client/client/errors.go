package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthenticated = errors.New("not logged in or session expired")
	ErrBadCredentials  = errors.New("invalid credentials")
	ErrForbidden       = errors.New("permission denied")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)
