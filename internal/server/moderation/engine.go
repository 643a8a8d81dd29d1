package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/server/classifier"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/google/uuid"
)

// Engine evaluates submissions against a session's state.
//
// Engine does no locking: callers must not run two Submit calls for the same
// session concurrently.
type Engine struct {
	gateway classifier.Gateway
	policy  Policy
	newID   func() string
}

func NewEngine(g classifier.Gateway, p Policy) *Engine {
	return &Engine{gateway: g, policy: p, newID: uuid.NewString}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Submit runs the moderation rules in order: lockout, classification, age
// gate, irrelevant-negative gate, acceptance. Only acceptance mutates s.
//
// A classifier failure yields OutcomeRejectedClassificationUnavailable
// together with an error wrapping common.ErrClassificationUnavailable.
func (e *Engine) Submit(ctx context.Context, s *models.Session, text string, now time.Time) (Result, error) {
	if s.LockedOut(now) {
		until := *s.LockoutUntil
		return Result{Outcome: OutcomeRejectedLockedOut, LockoutUntil: &until}, nil
	}

	c, err := e.gateway.Classify(ctx, text)
	if err != nil {
		if !errors.Is(err, common.ErrClassificationUnavailable) {
			err = errors.Join(common.ErrClassificationUnavailable, err)
		}
		return Result{Outcome: OutcomeRejectedClassificationUnavailable}, err
	}

	if s.Age < e.policy.AdultAge && c.Sentiment != models.SentimentPositive {
		return Result{Outcome: OutcomeRejectedAgeRestricted, Classification: c}, nil
	}

	if c.Sentiment == models.SentimentNegative && c.Relevance == models.RelevanceIrrelevant {
		return Result{Outcome: OutcomeRejectedIrrelevantNegative, Classification: c}, nil
	}

	return e.accept(s, text, c, now), nil
}

func (e *Engine) accept(s *models.Session, text string, c classifier.Result, now time.Time) Result {
	post := models.Post{
		ID:        e.newID(),
		Text:      text,
		PostedAt:  now,
		Sentiment: c.Sentiment,
		Relevance: c.Relevance,
	}
	s.History = append(s.History, post)

	// an expired lockout no longer blocks; drop it
	if s.LockoutUntil != nil && !s.LockedOut(now) {
		s.LockoutUntil = nil
	}

	res := Result{Outcome: OutcomeAccepted, Classification: c, Post: &post}

	switch c.Sentiment {
	case models.SentimentPositive:
		s.PositiveCount++
	case models.SentimentNegative:
		s.NegativeCount++
		switch {
		case s.NegativeCount == e.policy.NegativeLimit:
			res.Signal = SignalLockoutWarning
		case s.NegativeCount > e.policy.NegativeLimit:
			until := now.Add(e.policy.LockoutDuration)
			s.LockoutUntil = &until
			res.Signal = SignalLockoutActivated
			lockout := until
			res.LockoutUntil = &lockout
		}
	}

	return res
}
