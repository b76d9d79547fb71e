// Package grpc exposes the identity services over gRPC and runs the access
// gate in front of them.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/userkeeper/internal/api"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account side the handlers depend on.
type UserService interface {
	Signup(ctx context.Context, login, password string, apps []string) (*models.User, error)
	Login(ctx context.Context, login, password string) (*services.Session, error)
	UpdatePassword(ctx context.Context, principal *auth.Principal, oldPassword, newPassword string) error
}

// AppService manages grantable apps.
type AppService interface {
	Create(ctx context.Context, name string) (*models.App, error)
	Delete(ctx context.Context, name string) error
}

type GRPCServer struct {
	api.UnimplementedUserKeeperServer
	address string
	users   UserService
	apps    AppService
	gate    *Gate
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us UserService, as AppService, gate *Gate) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		apps:    as,
		gate:    gate,
	}
}

// NewServer builds a grpc.Server with the gate installed and the service
// registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(s.accessGateInterceptor)}, opts...)
	srv := grpc.NewServer(opts...)
	api.RegisterUserKeeperServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
