package models

import "time"

// Session is the working copy of one account's mutable state while its
// owner is logged in. It is written back to the account on logout.
type Session struct {
	ID        string
	AccountID string
	Email     string
	Age       int

	PositiveCount int
	NegativeCount int
	History       []Post
	LockoutUntil  *time.Time

	CreatedAt time.Time
	// TokenExpiresAt is the expiry of the newest access token issued for
	// the session.
	TokenExpiresAt time.Time
}

// NewSession projects a into a fresh session with the given id.
func NewSession(id string, a *Account, now time.Time) *Session {
	return &Session{
		ID:            id,
		AccountID:     a.ID,
		Email:         a.Email,
		Age:           a.Age,
		PositiveCount: a.PositiveCount,
		NegativeCount: a.NegativeCount,
		History:       clonePosts(a.History),
		LockoutUntil:  cloneTime(a.LockoutUntil),
		CreatedAt:     now,
	}
}

// ApplyTo copies the session's mutable fields onto a.
func (s *Session) ApplyTo(a *Account) {
	a.PositiveCount = s.PositiveCount
	a.NegativeCount = s.NegativeCount
	a.History = clonePosts(s.History)
	a.LockoutUntil = cloneTime(s.LockoutUntil)
}

func (s *Session) Clone() *Session {
	c := *s
	c.History = clonePosts(s.History)
	c.LockoutUntil = cloneTime(s.LockoutUntil)
	return &c
}

// LockedOut reports whether a lockout is in force at now.
func (s *Session) LockedOut(now time.Time) bool {
	return s.LockoutUntil != nil && now.Before(*s.LockoutUntil)
}
