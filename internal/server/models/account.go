// Package models defines the server-side domain records: accounts, their
// post history, and the in-memory sessions projected from them.
package models

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
)

type Relevance string

const (
	RelevanceRelevant   Relevance = "Relevant"
	RelevanceIrrelevant Relevance = "Irrelevant"
)

// Post is one accepted submission. The classification is stored with the
// post so history never needs to be re-classified.
type Post struct {
	ID        string
	Text      string
	PostedAt  time.Time
	Sentiment Sentiment
	Relevance Relevance
}

// Account is the durable record of a registered identity.
type Account struct {
	ID            string
	Email         string
	PasswordSalt  []byte
	PasswordHash  []byte
	Age           int
	PositiveCount int
	NegativeCount int
	// History is append-only; order is submission order.
	History      []Post
	LockoutUntil *time.Time
	CreatedAt    time.Time
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	c := *a
	c.PasswordSalt = append([]byte(nil), a.PasswordSalt...)
	c.PasswordHash = append([]byte(nil), a.PasswordHash...)
	c.History = clonePosts(a.History)
	c.LockoutUntil = cloneTime(a.LockoutUntil)
	return &c
}

func clonePosts(p []Post) []Post {
	if p == nil {
		return nil
	}
	return append(make([]Post, 0, len(p)), p...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
