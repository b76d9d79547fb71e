package common

const (
	// AuthorizationHeaderName is the gRPC metadata key carrying the bearer token.
	AuthorizationHeaderName = "authorization"

	// BearerPrefix precedes the token inside the authorization value.
	BearerPrefix = "Bearer "
)
