package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/api"
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.UserKeeperClient

	mu          sync.Mutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// clearToken drops the session unless it was replaced in the meantime.
func (s *GRPCClient) clearToken(used string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accessToken == used {
		s.accessToken = ""
	}
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	token := s.token()
	if token != "" {
		ctx = withAccessToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil || token == "" {
		return err
	}

	st, ok := status.FromError(err)
	if ok && st.Code() == codes.Unauthenticated && st.Message() != common.ErrorBadCredentials.Error() {
		s.clearToken(token)
	}
	return err
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewUserKeeperClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Signup(ctx context.Context, username, password string, apps []string) (*api.UserResponse, error) {
	resp, err := s.client.Signup(ctx, &api.SignupRequest{Username: username, Password: password, Apps: apps})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Login replaces the current session and returns its expiry.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (time.Time, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return time.Time{}, s.mapError(err)
	}
	s.setToken(resp.AccessToken)
	return time.Unix(resp.ExpiresAt, 0), nil
}

func (s *GRPCClient) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := s.client.UpdatePassword(ctx, &api.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	return s.mapError(err)
}

func (s *GRPCClient) Me(ctx context.Context) (*api.UserResponse, error) {
	resp, err := s.client.Me(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateApp(ctx context.Context, name string) (*api.AppResponse, error) {
	resp, err := s.client.CreateApp(ctx, &api.AppRequest{Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteApp(ctx context.Context, name string) error {
	_, err := s.client.DeleteApp(ctx, &api.AppRequest{Name: name})
	return s.mapError(err)
}

// Logout forgets the token locally. Tokens are not revoked server side.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrorBadCredentials.Error() {
			return ErrBadCredentials
		}
		return ErrUnauthenticated
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
