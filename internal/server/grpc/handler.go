package grpc

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/api"
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Signup(ctx context.Context, req *api.SignupRequest) (*api.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Debug(ctx, "Signup request", "username", req.Username)

	user, err := s.users.Signup(ctx, req.Username, req.Password, req.Apps)
	if err != nil {
		return nil, toStatus(err)
	}

	return userResponse(user.Login, user.Role, user.Apps), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Debug(ctx, "Login request", "username", req.Username)

	session, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginResponse{AccessToken: session.Token, ExpiresAt: session.ExpiresAt.Unix()}, nil
}

func (s *GRPCServer) UpdatePassword(ctx context.Context, req *api.UpdatePasswordRequest) (*emptypb.Empty, error) {
	if err := validateRequest(req); err != nil {
		return nil, toStatus(err)
	}

	p, _ := auth.PrincipalFromContext(ctx)
	if err := s.users.UpdatePassword(ctx, p, req.OldPassword, req.NewPassword); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// Me echoes the caller's token identity without touching the store.
func (s *GRPCServer) Me(ctx context.Context, _ *emptypb.Empty) (*api.UserResponse, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthenticated)
	}
	return userResponse(p.Login, p.Role, p.Apps), nil
}

func (s *GRPCServer) CreateApp(ctx context.Context, req *api.AppRequest) (*api.AppResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, toStatus(err)
	}
	if err := validateRequest(req); err != nil {
		return nil, toStatus(err)
	}

	app, err := s.apps.Create(ctx, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.AppResponse{ID: app.ID, Name: app.Name}, nil
}

func (s *GRPCServer) DeleteApp(ctx context.Context, req *api.AppRequest) (*emptypb.Empty, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, toStatus(err)
	}
	if err := validateRequest(req); err != nil {
		return nil, toStatus(err)
	}

	if err := s.apps.Delete(ctx, req.Name); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func requireAdmin(ctx context.Context) error {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return common.ErrorUnauthenticated
	}
	if !p.HasRole(models.RoleAdmin) {
		return common.ErrorForbidden
	}
	return nil
}

func userResponse(login string, role models.Role, apps []string) *api.UserResponse {
	if apps == nil {
		apps = []string{}
	}
	return &api.UserResponse{Username: login, Apps: apps, Role: string(role)}
}
