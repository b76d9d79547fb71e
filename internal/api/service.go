package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "userkeeper.UserKeeper"

// Full method names, as seen by interceptors.
const (
	MethodPing           = "/" + ServiceName + "/Ping"
	MethodSignup         = "/" + ServiceName + "/Signup"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodUpdatePassword = "/" + ServiceName + "/UpdatePassword"
	MethodMe             = "/" + ServiceName + "/Me"
	MethodCreateApp      = "/" + ServiceName + "/CreateApp"
	MethodDeleteApp      = "/" + ServiceName + "/DeleteApp"
)

// UserKeeperServer is implemented by the server side of the service.
type UserKeeperServer interface {
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
	Signup(context.Context, *SignupRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	UpdatePassword(context.Context, *UpdatePasswordRequest) (*emptypb.Empty, error)
	Me(context.Context, *emptypb.Empty) (*UserResponse, error)
	CreateApp(context.Context, *AppRequest) (*AppResponse, error)
	DeleteApp(context.Context, *AppRequest) (*emptypb.Empty, error)
}

// UnimplementedUserKeeperServer answers every method with codes.Unimplemented.
type UnimplementedUserKeeperServer struct{}

func (UnimplementedUserKeeperServer) Ping(context.Context, *emptypb.Empty) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedUserKeeperServer) Signup(context.Context, *SignupRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedUserKeeperServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedUserKeeperServer) UpdatePassword(context.Context, *UpdatePasswordRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePassword not implemented")
}
func (UnimplementedUserKeeperServer) Me(context.Context, *emptypb.Empty) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Me not implemented")
}
func (UnimplementedUserKeeperServer) CreateApp(context.Context, *AppRequest) (*AppResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateApp not implemented")
}
func (UnimplementedUserKeeperServer) DeleteApp(context.Context, *AppRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteApp not implemented")
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(UserKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserKeeperServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserKeeperServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, UserKeeperServer.Ping)},
		{MethodName: "Signup", Handler: unary(MethodSignup, UserKeeperServer.Signup)},
		{MethodName: "Login", Handler: unary(MethodLogin, UserKeeperServer.Login)},
		{MethodName: "UpdatePassword", Handler: unary(MethodUpdatePassword, UserKeeperServer.UpdatePassword)},
		{MethodName: "Me", Handler: unary(MethodMe, UserKeeperServer.Me)},
		{MethodName: "CreateApp", Handler: unary(MethodCreateApp, UserKeeperServer.CreateApp)},
		{MethodName: "DeleteApp", Handler: unary(MethodDeleteApp, UserKeeperServer.DeleteApp)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userkeeper",
}

func RegisterUserKeeperServer(s grpc.ServiceRegistrar, srv UserKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}
