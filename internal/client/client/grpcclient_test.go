package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	pb "github.com/dmitrijs2005/postguard/internal/proto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

type fakeServer struct {
	pb.UnimplementedPostGuardServiceServer

	mu         sync.Mutex
	loginToken string
	freshToken string
	seenTokens map[string]string
	refreshes  int
	submitErr  error
	logoutErr  error
}

func (f *fakeServer) record(ctx context.Context, method string) {
	md, _ := metadata.FromIncomingContext(ctx)
	var tok string
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		tok = v[0]
	}
	f.mu.Lock()
	f.seenTokens[method] = tok
	f.mu.Unlock()
}

func (f *fakeServer) Register(_ context.Context, in *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	if in.Password != in.ConfirmPassword {
		return nil, status.Error(codes.InvalidArgument, common.ErrCredentialMismatch.Error())
	}
	if in.Email == "taken@example.com" {
		return nil, status.Error(codes.AlreadyExists, common.ErrDuplicateEmail.Error())
	}
	return &pb.RegisterResponse{AccountID: "acc-1"}, nil
}

func (f *fakeServer) Login(_ context.Context, in *pb.LoginRequest) (*pb.LoginResponse, error) {
	if in.Password != "pw" {
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	}
	return &pb.LoginResponse{AccessToken: f.loginToken, Session: pb.SessionView{Email: in.Email, Age: 30}}, nil
}

func (f *fakeServer) Refresh(ctx context.Context, _ *pb.RefreshRequest) (*pb.RefreshResponse, error) {
	f.record(ctx, "refresh")
	f.mu.Lock()
	f.refreshes++
	f.mu.Unlock()
	return &pb.RefreshResponse{AccessToken: f.freshToken}, nil
}

func (f *fakeServer) Logout(ctx context.Context, _ *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	f.record(ctx, "logout")
	if f.logoutErr != nil {
		return nil, f.logoutErr
	}
	return &pb.LogoutResponse{}, nil
}

func (f *fakeServer) Submit(ctx context.Context, in *pb.SubmitRequest) (*pb.SubmitResponse, error) {
	f.record(ctx, "submit")
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &pb.SubmitResponse{Outcome: pb.OutcomeAccepted, Post: &pb.PostView{Text: in.Text}}, nil
}

func (f *fakeServer) Distribution(ctx context.Context, _ *pb.DistributionRequest) (*pb.DistributionResponse, error) {
	f.record(ctx, "distribution")
	return &pb.DistributionResponse{Counts: map[string]int{"Positive": 2, "Negative": 1}}, nil
}

func (f *fakeServer) Export(ctx context.Context, _ *pb.ExportRequest) (*pb.ExportResponse, error) {
	return nil, status.Error(codes.FailedPrecondition, common.ErrExportDisabled.Error())
}

func (f *fakeServer) Ping(context.Context, *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func newTestClient(t *testing.T, fs *fakeServer) *GRPCClient {
	t.Helper()

	if fs.seenTokens == nil {
		fs.seenTokens = map[string]string{}
	}

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterPostGuardServiceServer(srv, fs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewPostGuardClient("passthrough:///bufnet", 5*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	c.clock = clockwork.NewFakeClockAt(testNow)
	return c
}

func TestRegister_MapsErrors(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "a@example.com", "pw", "pw", 30))

	err := c.Register(ctx, "a@example.com", "pw", "other", 30)
	assert.ErrorIs(t, err, common.ErrCredentialMismatch)

	err = c.Register(ctx, "taken@example.com", "pw", "pw", 30)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestLogin_StoresTokenAndSendsIt(t *testing.T) {
	token := signedToken(t, testNow.Add(time.Hour))
	fs := &fakeServer{loginToken: token}
	c := newTestClient(t, fs)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.False(t, c.LoggedIn())

	sess, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", sess.Email)
	assert.True(t, c.LoggedIn())

	res, err := c.Submit(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, pb.OutcomeAccepted, res.Outcome)
	assert.Equal(t, token, fs.seenTokens["submit"])
	assert.Equal(t, 0, fs.refreshes)
}

func TestInterceptor_RefreshesTokenNearExpiry(t *testing.T) {
	stale := signedToken(t, testNow.Add(30*time.Second))
	fresh := signedToken(t, testNow.Add(time.Hour))
	fs := &fakeServer{loginToken: stale, freshToken: fresh}
	c := newTestClient(t, fs)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = c.Distribution(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, fs.refreshes)
	assert.Equal(t, stale, fs.seenTokens["refresh"])
	assert.Equal(t, fresh, fs.seenTokens["distribution"])
}

func TestCallsRequireLogin(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	ctx := context.Background()

	_, err := c.Submit(ctx, "x")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = c.Profile(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = c.Distribution(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = c.Export(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, c.Logout(ctx), ErrNotLoggedIn)
}

func TestSubmit_ExpiredSessionLogsOutLocally(t *testing.T) {
	fs := &fakeServer{
		loginToken: signedToken(t, testNow.Add(time.Hour)),
		submitErr:  status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error()),
	}
	c := newTestClient(t, fs)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = c.Submit(ctx, "x")
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.False(t, c.LoggedIn())
}

func TestSubmit_ClassifierUnavailable(t *testing.T) {
	fs := &fakeServer{
		loginToken: signedToken(t, testNow.Add(time.Hour)),
		submitErr:  status.Error(codes.Unavailable, common.ErrClassificationUnavailable.Error()),
	}
	c := newTestClient(t, fs)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = c.Submit(ctx, "x")
	assert.ErrorIs(t, err, common.ErrClassificationUnavailable)
	assert.True(t, c.LoggedIn())
}

func TestLogoutAndExport(t *testing.T) {
	token := signedToken(t, testNow.Add(time.Hour))
	fs := &fakeServer{loginToken: token}
	c := newTestClient(t, fs)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = c.Export(ctx)
	assert.ErrorIs(t, err, common.ErrExportDisabled)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, token, fs.seenTokens["logout"])
	assert.False(t, c.LoggedIn())
}

func TestLogout_SessionAlreadyClosed(t *testing.T) {
	for _, serverErr := range []error{common.ErrNoSession, common.ErrTokenExpired, common.ErrInvalidToken} {
		t.Run(serverErr.Error(), func(t *testing.T) {
			fs := &fakeServer{
				loginToken: signedToken(t, testNow.Add(time.Hour)),
				logoutErr:  status.Error(codes.Unauthenticated, serverErr.Error()),
			}
			c := newTestClient(t, fs)
			ctx := context.Background()

			_, err := c.Login(ctx, "a@example.com", "pw")
			require.NoError(t, err)

			assert.NoError(t, c.Logout(ctx))
			assert.False(t, c.LoggedIn())
		})
	}
}

func TestLogout_ServerUnavailable(t *testing.T) {
	fs := &fakeServer{
		loginToken: signedToken(t, testNow.Add(time.Hour)),
		logoutErr:  status.Error(codes.Unavailable, "connection reset"),
	}
	c := newTestClient(t, fs)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	assert.ErrorIs(t, c.Logout(ctx), ErrUnavailable)
	assert.False(t, c.LoggedIn())
}

func TestPing(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))

	plain := errors.New("plain")
	assert.Equal(t, plain, mapError(plain))

	assert.ErrorIs(t, mapError(status.Error(codes.Unavailable, "connection refused")), ErrUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.DeadlineExceeded, "slow")), ErrUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.PermissionDenied, "nope")), common.ErrorUnauthorized)
	assert.ErrorIs(t, mapError(status.Error(codes.InvalidArgument, common.ErrInvalidAge.Error())), common.ErrInvalidAge)

	err := mapError(status.Error(codes.Internal, "internal error"))
	assert.Contains(t, err.Error(), "rpc error")
}
