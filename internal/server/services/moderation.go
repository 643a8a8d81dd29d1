package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/dmitrijs2005/postguard/internal/server/metrics"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/moderation"
	"github.com/dmitrijs2005/postguard/internal/server/sessions"
	"github.com/dmitrijs2005/postguard/internal/server/store"
	"github.com/jonboulle/clockwork"
)

// SubmitResult pairs the moderation result with the session as it stands
// after the submission.
type SubmitResult struct {
	moderation.Result
	Session *models.Session
}

type Profile struct {
	Session *models.Session
	Badges  moderation.Badges
}

type ModerationService struct {
	store    store.AccountStore
	registry *sessions.Registry
	engine   *moderation.Engine
	clock    clockwork.Clock
	metrics  *metrics.ModerationMetrics
	logger   logging.Logger
}

func NewModerationService(st store.AccountStore, reg *sessions.Registry, e *moderation.Engine,
	clock clockwork.Clock, m *metrics.ModerationMetrics, l logging.Logger) *ModerationService {
	return &ModerationService{
		store:    st,
		registry: reg,
		engine:   e,
		clock:    clock,
		metrics:  m,
		logger:   l.With("module", "moderation"),
	}
}

// Submit moderates text for the session's account. Submissions on one
// account are applied one at a time in arrival order. An accepted post is
// written through to the store before Submit returns.
//
// When the classifier fails, the result carries
// OutcomeRejectedClassificationUnavailable and the error wraps
// common.ErrClassificationUnavailable. Blank text fails with
// common.ErrEmptyPost unless the account is locked out.
func (s *ModerationService) Submit(ctx context.Context, sessionID, text string) (*SubmitResult, error) {
	var out SubmitResult
	var submitErr error

	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		now := s.clock.Now()
		if !sess.LockedOut(now) && strings.TrimSpace(text) == "" {
			return common.ErrEmptyPost
		}
		out.Result, submitErr = s.engine.Submit(ctx, sess, text, now)

		if out.Accepted() {
			if err := saveSession(ctx, s.store, sess); err != nil {
				// the session keeps the post; logout or the sweeper retries the write
				s.logger.Error(ctx, "error persisting accepted post", "email", sess.Email, "error", err)
			}
		}

		out.Session = sess.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SubmissionsTotal.WithLabelValues(string(out.Outcome)).Inc()
	if out.Signal == moderation.SignalLockoutActivated {
		s.metrics.LockoutsTotal.Inc()
		s.logger.Info(ctx, "lockout started", "email", out.Session.Email, "until", out.LockoutUntil)
	}

	if submitErr != nil {
		s.logger.Warn(ctx, "classification failed", "email", out.Session.Email, "error", submitErr)
		return &out, submitErr
	}

	s.logger.Debug(ctx, "post moderated", "email", out.Session.Email, "outcome", out.Outcome)
	return &out, nil
}

// Profile returns the session with its derived badges.
func (s *ModerationService) Profile(ctx context.Context, sessionID string) (*Profile, error) {
	var p Profile
	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		p.Session = sess.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.Badges = s.engine.Policy().Badges(p.Session.PositiveCount, p.Session.NegativeCount)
	return &p, nil
}

// Distribution counts the session's history by stored sentiment.
func (s *ModerationService) Distribution(ctx context.Context, sessionID string) (map[models.Sentiment]int, error) {
	var dist map[models.Sentiment]int
	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		dist = moderation.Distribution(sess.History)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}
