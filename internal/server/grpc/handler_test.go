package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	pb "github.com/dmitrijs2005/postguard/internal/proto"
	"github.com/dmitrijs2005/postguard/internal/server/classifier"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/moderation"
	"github.com/dmitrijs2005/postguard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{common.ErrCredentialMismatch, codes.InvalidArgument},
		{common.ErrInvalidAge, codes.InvalidArgument},
		{common.ErrEmptyPost, codes.InvalidArgument},
		{common.ErrDuplicateEmail, codes.AlreadyExists},
		{common.ErrInvalidCredentials, codes.Unauthenticated},
		{fmt.Errorf("%w: timeout", common.ErrClassificationUnavailable), codes.Unavailable},
		{common.ErrExportDisabled, codes.FailedPrecondition},
		{errors.New("db exploded"), codes.Internal},
	}

	for _, tt := range tests {
		st, _ := status.FromError(toStatus(tt.err))
		assert.Equal(t, tt.code, st.Code(), tt.err.Error())
		assert.NotContains(t, st.Message(), "db exploded")
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(Services{Accounts: &fakeAccounts{acc: &models.Account{ID: "acc-1"}}})

	resp, err := s.Register(context.Background(), &pb.RegisterRequest{Email: "a@example.com", Password: "pw", ConfirmPassword: "pw", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", resp.AccountID)

	s = newTestServer(Services{Accounts: &fakeAccounts{err: common.ErrDuplicateEmail}})
	_, err = s.Register(context.Background(), &pb.RegisterRequest{Email: "a@example.com"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.AlreadyExists, st.Code())
	assert.Equal(t, common.ErrDuplicateEmail.Error(), st.Message())
}

func TestLogin(t *testing.T) {
	sess := &models.Session{ID: "s1", Email: "a@example.com", Age: 30, PositiveCount: 2}
	s := newTestServer(Services{Sessions: &fakeSessions{login: &services.LoginResult{Session: sess, AccessToken: "tok"}}})

	resp, err := s.Login(context.Background(), &pb.LoginRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, 2, resp.Session.PositiveCount)

	s = newTestServer(Services{Sessions: &fakeSessions{loginErr: common.ErrInvalidCredentials}})
	_, err = s.Login(context.Background(), &pb.LoginRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestLogout(t *testing.T) {
	fs := &fakeSessions{}
	s := newTestServer(Services{Sessions: fs})

	_, err := s.Logout(withSession("s1"), &pb.LogoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "s1", fs.loggedOut)

	_, err = s.Logout(context.Background(), &pb.LogoutRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestSubmit(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := at.Add(6 * time.Hour)
	post := &models.Post{ID: "p1", Text: "bad", PostedAt: at, Sentiment: models.SentimentNegative, Relevance: models.RelevanceRelevant}
	fm := &fakeModeration{submit: &services.SubmitResult{
		Result: moderation.Result{
			Outcome:        moderation.OutcomeAccepted,
			Signal:         moderation.SignalLockoutActivated,
			Classification: classifier.Result{Sentiment: models.SentimentNegative, Relevance: models.RelevanceRelevant},
			Post:           post,
			LockoutUntil:   &until,
		},
		Session: &models.Session{Email: "a@example.com", NegativeCount: 6, History: []models.Post{*post}, LockoutUntil: &until},
	}}
	s := newTestServer(Services{Moderation: fm})

	resp, err := s.Submit(withSession("s1"), &pb.SubmitRequest{Text: "bad"})
	require.NoError(t, err)

	assert.Equal(t, "s1", fm.gotSession)
	assert.Equal(t, "bad", fm.gotText)
	assert.Equal(t, pb.OutcomeAccepted, resp.Outcome)
	assert.Equal(t, pb.SignalLockoutActivated, resp.Signal)
	assert.Equal(t, "Negative", resp.Sentiment)
	require.NotNil(t, resp.Post)
	assert.Equal(t, "p1", resp.Post.ID)
	assert.Equal(t, &until, resp.LockoutUntil)
	assert.Len(t, resp.Session.History, 1)
}

func TestSubmit_Rejected(t *testing.T) {
	fm := &fakeModeration{submit: &services.SubmitResult{
		Result:  moderation.Result{Outcome: moderation.OutcomeRejectedAgeRestricted},
		Session: &models.Session{Email: "teen@example.com", Age: 15},
	}}
	s := newTestServer(Services{Moderation: fm})

	resp, err := s.Submit(withSession("s1"), &pb.SubmitRequest{Text: "bad"})
	require.NoError(t, err)
	assert.Equal(t, pb.OutcomeRejectedAgeRestricted, resp.Outcome)
	assert.Nil(t, resp.Post)
}

func TestSubmit_ClassifierDown(t *testing.T) {
	fm := &fakeModeration{
		submit:    &services.SubmitResult{Result: moderation.Result{Outcome: moderation.OutcomeRejectedClassificationUnavailable}},
		submitErr: common.ErrClassificationUnavailable,
	}
	s := newTestServer(Services{Moderation: fm})

	_, err := s.Submit(withSession("s1"), &pb.SubmitRequest{Text: "x"})
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestProfileAndDistribution(t *testing.T) {
	fm := &fakeModeration{
		profile: &services.Profile{
			Session: &models.Session{Email: "a@example.com", PositiveCount: 7},
			Badges:  moderation.Badges{Positive: true},
		},
		dist: map[models.Sentiment]int{models.SentimentPositive: 7},
	}
	s := newTestServer(Services{Moderation: fm})

	p, err := s.Profile(withSession("s1"), &pb.ProfileRequest{})
	require.NoError(t, err)
	assert.True(t, p.PositiveBadge)
	assert.False(t, p.NegativeBadge)
	assert.Equal(t, 7, p.Session.PositiveCount)

	d, err := s.Distribution(withSession("s1"), &pb.DistributionRequest{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Positive": 7}, d.Counts)
}

func TestExport(t *testing.T) {
	exp := time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC)
	s := newTestServer(Services{Export: &fakeExport{res: &services.ExportResult{Key: "k", URL: "https://x", ExpiresAt: exp}}})

	resp, err := s.Export(withSession("s1"), &pb.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "https://x", resp.URL)
	assert.Equal(t, exp, resp.ExpiresAt)

	s = newTestServer(Services{Export: &fakeExport{err: common.ErrExportDisabled}})
	_, err = s.Export(withSession("s1"), &pb.ExportRequest{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestRefreshAndPing(t *testing.T) {
	s := newTestServer(Services{Sessions: &fakeSessions{token: "new-token"}})

	r, err := s.Refresh(withSession("s1"), &pb.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, "new-token", r.AccessToken)

	p, err := s.Ping(context.Background(), &pb.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", p.Status)
}
