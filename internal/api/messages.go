// Package api is the wire contract of the userkeeper gRPC service: request
// and response messages, the JSON codec they travel with, the service
// descriptor and a client stub.
package api

// SignupRequest registers a new account with its app grants.
type SignupRequest struct {
	Username string   `json:"username" validate:"required,min=4,max=30"`
	Password string   `json:"password" validate:"required,min=6,max=30"`
	Apps     []string `json:"apps" validate:"required,min=1,dive,required,max=30"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token; ExpiresAt is Unix seconds.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=6,max=30"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=30"`
}

// UserResponse never carries a password or hash. Role is empty for plain users.
type UserResponse struct {
	Username string   `json:"username"`
	Apps     []string `json:"apps"`
	Role     string   `json:"role,omitempty"`
}

type AppRequest struct {
	Name string `json:"name" validate:"required,max=30"`
}

type AppResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PingResponse struct {
	Status string `json:"status"`
}
