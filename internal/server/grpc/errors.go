package grpc

import (
	"errors"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps the failure taxonomy onto gRPC codes. Anything unexpected
// becomes an opaque Internal.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorBadCredentials):
		return status.Error(codes.Unauthenticated, common.ErrorBadCredentials.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthenticated.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrorInvalidGrantName):
		return status.Error(codes.InvalidArgument, common.ErrorInvalidGrantName.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
