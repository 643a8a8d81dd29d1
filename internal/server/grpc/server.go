// Package grpc exposes the PostGuard services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/postguard/internal/logging"
	pb "github.com/dmitrijs2005/postguard/internal/proto"
	"github.com/dmitrijs2005/postguard/internal/server/metrics"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/services"
	"google.golang.org/grpc"
)

type AccountRegistrar interface {
	Register(ctx context.Context, email, password, confirm string, age int) (*models.Account, error)
}

type SessionManager interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, sessionID string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

type Moderator interface {
	Submit(ctx context.Context, sessionID, text string) (*services.SubmitResult, error)
	Profile(ctx context.Context, sessionID string) (*services.Profile, error)
	Distribution(ctx context.Context, sessionID string) (map[models.Sentiment]int, error)
}

type Exporter interface {
	Export(ctx context.Context, sessionID string) (*services.ExportResult, error)
}

// Services bundles the handlers' dependencies.
type Services struct {
	Accounts   AccountRegistrar
	Sessions   SessionManager
	Moderation Moderator
	Export     Exporter
}

type GRPCServer struct {
	pb.UnimplementedPostGuardServiceServer
	address  string
	services Services
	metrics  *metrics.RPCMetrics
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, svc Services, m *metrics.RPCMetrics) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		services: svc,
		metrics:  m,
	}
}

func (s *GRPCServer) interceptors() []grpc.UnaryServerInterceptor {
	var chain []grpc.UnaryServerInterceptor
	if s.metrics != nil {
		chain = append(chain, s.metrics.UnaryInterceptor())
	}
	return append(chain, s.accessTokenInterceptor)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.interceptors()...))

	// registers service
	pb.RegisterPostGuardServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
