package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/postguard/internal/common"
	pb "github.com/dmitrijs2005/postguard/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionIDKey ctxKey = "sessionID"

// publicMethods need no access token.
var publicMethods = map[string]struct{}{
	pb.MethodRegister: {},
	pb.MethodLogin:    {},
	pb.MethodPing:     {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	sessionID, err := s.services.Sessions.Authenticate(ctx, accessToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		case errors.Is(err, common.ErrNoSession):
			return nil, status.Error(codes.Unauthenticated, common.ErrNoSession.Error())
		default:
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}
	}

	ctx = context.WithValue(ctx, sessionIDKey, sessionID)

	return handler(ctx, req)
}

func sessionIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(sessionIDKey).(string)
	if !ok || id == "" {
		return "", status.Error(codes.Unauthenticated, common.ErrNoSession.Error())
	}
	return id, nil
}
