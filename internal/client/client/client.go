package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/api"
)

// Client is the CLI's view of the userkeeper service. The session token is
// kept inside the implementation and attached to calls automatically.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Signup(ctx context.Context, username, password string, apps []string) (*api.UserResponse, error)
	Login(ctx context.Context, username, password string) (time.Time, error)
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) error
	Me(ctx context.Context) (*api.UserResponse, error)
	CreateApp(ctx context.Context, name string) (*api.AppResponse, error)
	DeleteApp(ctx context.Context, name string) error
	Logout()
	LoggedIn() bool
}
