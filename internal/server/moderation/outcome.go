package moderation

import (
	"time"

	"github.com/dmitrijs2005/postguard/internal/server/classifier"
	"github.com/dmitrijs2005/postguard/internal/server/models"
)

type Outcome string

const (
	OutcomeAccepted                          Outcome = "Accepted"
	OutcomeRejectedAgeRestricted             Outcome = "RejectedAgeRestricted"
	OutcomeRejectedIrrelevantNegative        Outcome = "RejectedIrrelevantNegative"
	OutcomeRejectedLockedOut                 Outcome = "RejectedLockedOut"
	OutcomeRejectedClassificationUnavailable Outcome = "RejectedClassificationUnavailable"
)

// Signal is advisory information attached to an accepted post.
type Signal string

const (
	SignalNone             Signal = ""
	SignalLockoutWarning   Signal = "LockoutWarning"
	SignalLockoutActivated Signal = "LockoutActivated"
)

// Result describes what happened to one submission.
type Result struct {
	Outcome Outcome
	Signal  Signal
	// Classification is zero when the text was never classified.
	Classification classifier.Result
	// Post is set only when the submission was accepted.
	Post *models.Post
	// LockoutUntil is set when the submission was blocked by, or started, a lockout.
	LockoutUntil *time.Time
}

func (r Result) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}
