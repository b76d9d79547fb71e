// Package client talks to the userkeeper gRPC service on behalf of the CLI.
//
// GRPCClient keeps the access token returned by Login in memory and an
// interceptor attaches it to every call as "authorization: Bearer <token>".
// A call rejected as unauthenticated (for any reason other than wrong
// credentials) drops the token, so the user has to log in again.
//
// gRPC status codes are mapped to the sentinel errors of this package:
// ErrUnavailable, ErrUnauthenticated, ErrBadCredentials, ErrForbidden,
// ErrAlreadyExists and ErrInvalidArgument.
package client
