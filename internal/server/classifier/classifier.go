// Package classifier is the gateway to the text classifier that labels every
// submitted post with a sentiment and a relevance.
//
// The gateway is a pure function of the text as far as callers are
// concerned; Guarded adds the timeout and circuit breaker a remote
// implementation needs, mapping every failure to
// common.ErrClassificationUnavailable.
package classifier

import (
	"context"

	"github.com/dmitrijs2005/postguard/internal/server/models"
)

// Result is the classifier's verdict on one text.
type Result struct {
	Sentiment models.Sentiment
	Relevance models.Relevance
}

// Gateway classifies post text.
type Gateway interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// GatewayFunc adapts a plain function to Gateway.
type GatewayFunc func(ctx context.Context, text string) (Result, error)

func (f GatewayFunc) Classify(ctx context.Context, text string) (Result, error) {
	return f(ctx, text)
}
