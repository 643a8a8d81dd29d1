package grpc

import (
	"errors"

	"github.com/dmitrijs2005/postguard/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrCredentialMismatch, codes.InvalidArgument},
	{common.ErrInvalidAge, codes.InvalidArgument},
	{common.ErrInvalidEmail, codes.InvalidArgument},
	{common.ErrEmptyPost, codes.InvalidArgument},
	{common.ErrDuplicateEmail, codes.AlreadyExists},
	{common.ErrInvalidCredentials, codes.Unauthenticated},
	{common.ErrNoSession, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrClassificationUnavailable, codes.Unavailable},
	{common.ErrExportDisabled, codes.FailedPrecondition},
}

// toStatus maps a service error onto a gRPC status. The message is the
// sentinel's text so clients can recover the sentinel; anything unknown is
// reported as internal.
func toStatus(err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return status.Error(e.code, e.err.Error())
		}
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
