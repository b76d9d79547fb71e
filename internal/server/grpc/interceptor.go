package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// accessGateInterceptor runs the Gate in front of every unary call. The
// handler context carries the verified principal, and only that one: any
// principal already present is masked first.
func (s *GRPCServer) accessGateInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx = auth.WithoutPrincipal(ctx)

	var authorization string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			authorization = values[0]
		}
	}

	d := s.gate.Decide(info.FullMethod, authorization)
	if d.Err != nil {
		s.logRejection(ctx, info.FullMethod, d)
		return nil, toStatus(d.Err)
	}

	if d.Principal != nil {
		ctx = auth.WithPrincipal(ctx, d.Principal)
	}
	return handler(ctx, req)
}

func (s *GRPCServer) logRejection(ctx context.Context, method string, d Decision) {
	switch {
	case errors.Is(d.Err, common.ErrorForbidden):
		s.logger.Warn(ctx, "forbidden", "method", method, "login", d.Principal.Login, "role", d.Principal.Role.String())
	case errors.Is(d.Err, common.ErrTokenExpired):
		s.logger.Info(ctx, "expired token", "method", method)
	case errors.Is(d.Err, common.ErrInvalidToken):
		s.logger.Warn(ctx, "invalid token", "method", method, "error", d.Err)
	default:
		s.logger.Debug(ctx, "missing token", "method", method)
	}
}
