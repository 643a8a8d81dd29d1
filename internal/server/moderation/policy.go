// Package moderation decides whether a post is accepted and applies the
// consequences of acceptance to the poster's session.
package moderation

import (
	"time"

	"github.com/dmitrijs2005/postguard/internal/server/models"
)

// Policy holds the thresholds of the moderation rules.
type Policy struct {
	// AdultAge is the minimum age allowed to post non-positive content.
	AdultAge int
	// NegativeLimit is the negative count at which the poster is warned;
	// exceeding it starts a lockout.
	NegativeLimit int
	// LockoutDuration is how long posting stays blocked.
	LockoutDuration time.Duration
	// PositiveBadgeAfter: more positive posts than this earn the positive badge.
	PositiveBadgeAfter int
	// NegativeBadgeCeiling: the negative badge shows while the negative count
	// is above NegativeLimit and at most this value.
	NegativeBadgeCeiling int
}

func DefaultPolicy() Policy {
	return Policy{
		AdultAge:             18,
		NegativeLimit:        5,
		LockoutDuration:      6 * time.Hour,
		PositiveBadgeAfter:   5,
		NegativeBadgeCeiling: 10,
	}
}

// Badges are derived from counters on every read and never stored.
type Badges struct {
	Positive bool
	Negative bool
}

func (p Policy) Badges(positiveCount, negativeCount int) Badges {
	return Badges{
		Positive: positiveCount > p.PositiveBadgeAfter,
		Negative: negativeCount > p.NegativeLimit && negativeCount <= p.NegativeBadgeCeiling,
	}
}

// Distribution counts history entries per stored sentiment label.
func Distribution(history []models.Post) map[models.Sentiment]int {
	counts := make(map[models.Sentiment]int)
	for _, p := range history {
		counts[p.Sentiment]++
	}
	return counts
}
