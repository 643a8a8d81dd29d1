package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	pb "github.com/dmitrijs2005/postguard/internal/proto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// refreshWindow is how close to expiry a token gets refreshed.
const refreshWindow = time.Minute

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	clock       clockwork.Clock
	conn        *grpc.ClientConn
	client      pb.PostGuardServiceClient

	mu          sync.Mutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	s.accessToken = t
	s.mu.Unlock()
}

// expiresSoon reads the expiry of token without verifying it; the server
// does the verification.
func (s *GRPCClient) expiresSoon(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Sub(s.clock.Now()) < refreshWindow
}

func (s *GRPCClient) refresh(ctx context.Context, token string) {
	resp, err := s.client.Refresh(withAccessToken(ctx, token), &pb.RefreshRequest{})
	if err != nil {
		return
	}
	s.setToken(resp.AccessToken)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	token := s.token()
	if token == "" {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	if method != pb.MethodRefresh && s.expiresSoon(token) {
		s.refresh(ctx, token)
		token = s.token()
	}

	return invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
}

func NewPostGuardClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, clock: clockwork.NewRealClock()}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewPostGuardServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Register(ctx context.Context, email, password, confirm string, age int) error {

	req := &pb.RegisterRequest{Email: email, Password: password, ConfirmPassword: confirm, Age: age}

	if _, err := s.client.Register(ctx, req); err != nil {
		return mapError(err)
	}

	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*pb.SessionView, error) {

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}

	s.setToken(resp.AccessToken)

	return &resp.Session, nil
}

// Logout ends the session on the server and forgets the token. The token is
// dropped even if the server call fails. A session the server has already
// closed counts as logged out.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}

	_, err := s.client.Logout(ctx, &pb.LogoutRequest{})
	s.setToken("")

	err = mapError(err)
	if sessionGone(err) {
		return nil
	}
	return err
}

func sessionGone(err error) bool {
	return errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrNoSession) || errors.Is(err, common.ErrInvalidToken)
}

// authed maps an authentication failure to a local logout.
func (s *GRPCClient) authed(err error) error {
	err = mapError(err)
	if sessionGone(err) {
		s.setToken("")
	}
	return err
}

func (s *GRPCClient) Submit(ctx context.Context, text string) (*pb.SubmitResponse, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	resp, err := s.client.Submit(ctx, &pb.SubmitRequest{Text: text})
	if err != nil {
		return nil, s.authed(err)
	}
	return resp, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*pb.ProfileResponse, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	resp, err := s.client.Profile(ctx, &pb.ProfileRequest{})
	if err != nil {
		return nil, s.authed(err)
	}
	return resp, nil
}

func (s *GRPCClient) Distribution(ctx context.Context) (map[string]int, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	resp, err := s.client.Distribution(ctx, &pb.DistributionRequest{})
	if err != nil {
		return nil, s.authed(err)
	}
	return resp.Counts, nil
}

func (s *GRPCClient) Export(ctx context.Context) (*pb.ExportResponse, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	resp, err := s.client.Export(ctx, &pb.ExportRequest{})
	if err != nil {
		return nil, s.authed(err)
	}
	return resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}
