package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postguard/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotLoggedIn = errors.New("not logged in")
)

// knownErrors are the sentinels the server reports by message.
var knownErrors = []error{
	common.ErrCredentialMismatch,
	common.ErrDuplicateEmail,
	common.ErrInvalidAge,
	common.ErrInvalidEmail,
	common.ErrEmptyPost,
	common.ErrInvalidCredentials,
	common.ErrNoSession,
	common.ErrInvalidToken,
	common.ErrTokenExpired,
	common.ErrClassificationUnavailable,
	common.ErrExportDisabled,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	for _, e := range knownErrors {
		if st.Message() == e.Error() {
			return e
		}
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return common.ErrorUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
