package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/cryptox"
	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/dmitrijs2005/postguard/internal/server/auth"
	"github.com/dmitrijs2005/postguard/internal/server/metrics"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/sessions"
	"github.com/dmitrijs2005/postguard/internal/server/store"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type LoginResult struct {
	Session     *models.Session
	AccessToken string
}

type SessionService struct {
	store    store.AccountStore
	registry *sessions.Registry
	clock    clockwork.Clock
	metrics  *metrics.SessionMetrics
	logger   logging.Logger

	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewSessionService(st store.AccountStore, reg *sessions.Registry, clock clockwork.Clock,
	secretKey string, validity time.Duration, m *metrics.SessionMetrics, l logging.Logger) *SessionService {
	return &SessionService{
		store:                       st,
		registry:                    reg,
		clock:                       clock,
		metrics:                     m,
		logger:                      l.With("module", "sessions"),
		jwtSecret:                   []byte(secretKey),
		accessTokenValidityDuration: validity,
	}
}

// Login verifies the credential and opens a session. An unknown email and a
// wrong password both yield common.ErrInvalidCredentials. A session already
// open for the account is written back and replaced.
func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	unlock := s.registry.Lock(email)
	defer unlock()

	acc, err := s.store.Find(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.loginFailed(ctx, email)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	if !cryptox.VerifyPassword([]byte(password), cryptox.Credential{Salt: acc.PasswordSalt, Hash: acc.PasswordHash}) {
		s.loginFailed(ctx, email)
		return nil, common.ErrInvalidCredentials
	}

	if prev, ok := s.registry.Lookup(email); ok {
		prev.ApplyTo(acc)
		if err := s.store.Save(ctx, acc); err != nil {
			return nil, fmt.Errorf("error saving previous session: %w", err)
		}
		s.logger.Info(ctx, "replacing session", "email", email, "session", prev.ID)
	}

	now := s.clock.Now()
	sess := models.NewSession(uuid.NewString(), acc, now)
	sess.TokenExpiresAt = now.Add(s.accessTokenValidityDuration)

	token, err := auth.GenerateToken(sess.ID, s.jwtSecret, now, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.registry.Put(sess)
	s.observeActive()
	s.metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info(ctx, "logged in", "email", email, "session", sess.ID)

	return &LoginResult{Session: sess.Clone(), AccessToken: token}, nil
}

func (s *SessionService) loginFailed(ctx context.Context, email string) {
	s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.logger.Warn(ctx, "login failed", "email", email)
}

// Authenticate resolves an access token to a live session id.
func (s *SessionService) Authenticate(ctx context.Context, token string) (string, error) {
	id, err := auth.GetSessionIDFromToken(token, s.jwtSecret, s.clock.Now())
	if err != nil {
		return "", err
	}
	if _, ok := s.registry.Get(id); !ok {
		return "", common.ErrNoSession
	}
	return id, nil
}

// Refresh mints a fresh access token for a live session.
func (s *SessionService) Refresh(ctx context.Context, sessionID string) (string, error) {
	var token string
	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		now := s.clock.Now()
		var err error
		token, err = auth.GenerateToken(sess.ID, s.jwtSecret, now, s.accessTokenValidityDuration)
		if err != nil {
			return err
		}
		s.registry.ExtendToken(sess.ID, now.Add(s.accessTokenValidityDuration))
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout writes the session back to the store and discards it. Logging out
// a session that is not live is a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		if err := saveSession(ctx, s.store, sess); err != nil {
			return err
		}
		s.registry.Remove(sess.ID)
		s.logger.Info(ctx, "logged out", "email", sess.Email, "session", sess.ID)
		return nil
	})
	if errors.Is(err, common.ErrNoSession) {
		return nil
	}
	s.observeActive()
	return err
}

// Current returns a copy of the live session.
func (s *SessionService) Current(ctx context.Context, sessionID string) (*models.Session, error) {
	var snapshot *models.Session
	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		snapshot = sess.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Sweep closes sessions whose newest token has expired. Such a session can
// no longer authenticate, so nothing else would ever close it.
func (s *SessionService) Sweep(ctx context.Context) int {
	closed := 0
	for _, id := range s.registry.ExpiredBefore(s.clock.Now()) {
		if err := s.Logout(ctx, id); err != nil {
			s.logger.Error(ctx, "error closing expired session", "session", id, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		s.logger.Info(ctx, "expired sessions closed", "count", closed)
	}
	return closed
}

// Shutdown writes every live session back to the store and discards it.
func (s *SessionService) Shutdown(ctx context.Context) error {
	var errs []error
	for _, id := range s.registry.IDs() {
		if err := s.Logout(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *SessionService) observeActive() {
	s.metrics.ActiveSessions.Set(float64(s.registry.Len()))
}

// saveSession copies the session's mutable state onto its stored account.
func saveSession(ctx context.Context, st store.AccountStore, sess *models.Session) error {
	acc, err := st.Find(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("error loading account: %w", err)
	}
	sess.ApplyTo(acc)
	if err := st.Save(ctx, acc); err != nil {
		return fmt.Errorf("error saving account: %w", err)
	}
	return nil
}
