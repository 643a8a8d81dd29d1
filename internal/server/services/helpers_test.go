package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/dmitrijs2005/postguard/internal/server/classifier"
	"github.com/dmitrijs2005/postguard/internal/server/metrics"
	"github.com/dmitrijs2005/postguard/internal/server/moderation"
	"github.com/dmitrijs2005/postguard/internal/server/sessions"
	"github.com/dmitrijs2005/postguard/internal/server/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testValidity = time.Hour
)

var testStart = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	clock      *clockwork.FakeClock
	store      *store.MemoryStore
	registry   *sessions.Registry
	accounts   *AccountService
	sessions   *SessionService
	moderation *ModerationService
	sessionM   *metrics.SessionMetrics
	modM       *metrics.ModerationMetrics
}

func newHarness(t *testing.T, g classifier.Gateway) *harness {
	t.Helper()
	if g == nil {
		g = classifier.NewLexicon()
	}

	reg := metrics.NewRegistry()
	h := &harness{
		clock:    clockwork.NewFakeClockAt(testStart),
		store:    store.NewMemoryStore(),
		registry: sessions.NewRegistry(),
		sessionM: metrics.NewSessionMetrics(reg),
		modM:     metrics.NewModerationMetrics(reg),
	}
	l := logging.Nop()
	h.accounts = NewAccountService(h.store, h.clock, l)
	h.sessions = NewSessionService(h.store, h.registry, h.clock, testSecret, testValidity, h.sessionM, l)
	h.moderation = NewModerationService(h.store, h.registry,
		moderation.NewEngine(g, moderation.DefaultPolicy()), h.clock, h.modM, l)
	return h
}

// signup registers and logs in, returning the session id.
func (h *harness) signup(t *testing.T, email string, age int) string {
	t.Helper()
	ctx := context.Background()
	_, err := h.accounts.Register(ctx, email, "pw", "pw", age)
	require.NoError(t, err)
	res, err := h.sessions.Login(ctx, email, "pw")
	require.NoError(t, err)
	return res.Session.ID
}
