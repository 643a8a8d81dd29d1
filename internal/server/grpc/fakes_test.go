package grpc

import (
	"context"

	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeAccounts struct {
	acc *models.Account
	err error
}

func (f *fakeAccounts) Register(context.Context, string, string, string, int) (*models.Account, error) {
	return f.acc, f.err
}

type fakeSessions struct {
	login     *services.LoginResult
	loginErr  error
	logoutErr error
	token     string
	authID    string
	authErr   error

	loggedOut string
}

func (f *fakeSessions) Login(context.Context, string, string) (*services.LoginResult, error) {
	return f.login, f.loginErr
}

func (f *fakeSessions) Logout(_ context.Context, id string) error {
	f.loggedOut = id
	return f.logoutErr
}

func (f *fakeSessions) Refresh(context.Context, string) (string, error) {
	return f.token, nil
}

func (f *fakeSessions) Authenticate(context.Context, string) (string, error) {
	return f.authID, f.authErr
}

type fakeModeration struct {
	submit    *services.SubmitResult
	submitErr error
	profile   *services.Profile
	dist      map[models.Sentiment]int

	gotSession string
	gotText    string
}

func (f *fakeModeration) Submit(_ context.Context, id, text string) (*services.SubmitResult, error) {
	f.gotSession, f.gotText = id, text
	return f.submit, f.submitErr
}

func (f *fakeModeration) Profile(_ context.Context, id string) (*services.Profile, error) {
	f.gotSession = id
	return f.profile, nil
}

func (f *fakeModeration) Distribution(_ context.Context, id string) (map[models.Sentiment]int, error) {
	f.gotSession = id
	return f.dist, nil
}

type fakeExport struct {
	res *services.ExportResult
	err error
}

func (f *fakeExport) Export(context.Context, string) (*services.ExportResult, error) {
	return f.res, f.err
}

func newTestServer(svc Services) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, svc, nil)
}

func withSession(id string) context.Context {
	return context.WithValue(context.Background(), sessionIDKey, id)
}
