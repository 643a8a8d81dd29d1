package proto

import "time"

// Outcome and signal values carried in SubmitResponse.
const (
	OutcomeAccepted                          = "Accepted"
	OutcomeRejectedAgeRestricted             = "RejectedAgeRestricted"
	OutcomeRejectedIrrelevantNegative        = "RejectedIrrelevantNegative"
	OutcomeRejectedLockedOut                 = "RejectedLockedOut"
	OutcomeRejectedClassificationUnavailable = "RejectedClassificationUnavailable"

	SignalLockoutWarning   = "LockoutWarning"
	SignalLockoutActivated = "LockoutActivated"
)

type PostView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PostedAt  time.Time `json:"posted_at"`
	Sentiment string    `json:"sentiment"`
	Relevance string    `json:"relevance"`
}

type SessionView struct {
	Email         string     `json:"email"`
	Age           int        `json:"age"`
	PositiveCount int        `json:"positive_count"`
	NegativeCount int        `json:"negative_count"`
	History       []PostView `json:"history,omitempty"`
	LockoutUntil  *time.Time `json:"lockout_until,omitempty"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Age             int    `json:"age"`
}

type RegisterResponse struct {
	AccountID string `json:"account_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	Session     SessionView `json:"session"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type RefreshRequest struct{}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type SubmitRequest struct {
	Text string `json:"text"`
}

type SubmitResponse struct {
	Outcome      string      `json:"outcome"`
	Signal       string      `json:"signal,omitempty"`
	Sentiment    string      `json:"sentiment,omitempty"`
	Relevance    string      `json:"relevance,omitempty"`
	Post         *PostView   `json:"post,omitempty"`
	LockoutUntil *time.Time  `json:"lockout_until,omitempty"`
	Session      SessionView `json:"session"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	Session       SessionView `json:"session"`
	PositiveBadge bool        `json:"positive_badge"`
	NegativeBadge bool        `json:"negative_badge"`
}

type DistributionRequest struct{}

type DistributionResponse struct {
	Counts map[string]int `json:"counts"`
}

type ExportRequest struct{}

type ExportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
