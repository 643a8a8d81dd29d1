package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// Guarded protects calls to an inner Gateway with a per-call timeout and a
// circuit breaker. Any failure is reported as ErrClassificationUnavailable so
// the caller can fail closed.
type Guarded struct {
	inner   Gateway
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
	latency prometheus.Observer
}

// GuardedOptions tune the breaker. Zero values fall back to defaults.
type GuardedOptions struct {
	// Timeout bounds a single Classify call; zero disables it.
	Timeout time.Duration
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// Latency, when set, observes the duration of every inner call in seconds.
	Latency prometheus.Observer
}

func NewGuarded(inner Gateway, opts GuardedOptions, logger logging.Logger) *Guarded {
	if opts.ConsecutiveFailures == 0 {
		opts.ConsecutiveFailures = 5
	}
	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	log := logger.With("module", "classifier")
	threshold := opts.ConsecutiveFailures

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a caller that gives up says nothing about the classifier's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})

	return &Guarded{inner: inner, timeout: opts.Timeout, cb: cb, latency: opts.Latency}
}

type classifyResult struct {
	res Result
	err error
}

func (g *Guarded) Classify(ctx context.Context, text string) (Result, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.call(ctx, text)
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", common.ErrClassificationUnavailable, err)
	}
	return out.(Result), nil
}

func (g *Guarded) call(ctx context.Context, text string) (Result, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	ch := make(chan classifyResult, 1)
	go func() {
		r, err := g.inner.Classify(ctx, text)
		ch <- classifyResult{res: r, err: err}
	}()

	select {
	case v := <-ch:
		if g.latency != nil {
			g.latency.Observe(time.Since(start).Seconds())
		}
		return v.res, v.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// State exposes the breaker state for health reporting.
func (g *Guarded) State() gobreaker.State {
	return g.cb.State()
}
