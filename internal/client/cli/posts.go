package cli

import (
	"context"
	"fmt"
)

func (a *App) Post(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return err
	}

	start := a.clock.Now()
	res, err := a.client.Submit(ctx, text)
	if err != nil {
		return a.fail(err)
	}

	for _, l := range submitMessages(res) {
		fmt.Fprintln(a.out, l)
	}
	fmt.Fprintf(a.out, "Moderation took %.2f seconds\n", a.clock.Since(start).Seconds())
	return nil
}

// History prints accepted posts oldest first.
func (a *App) History(ctx context.Context) error {
	p, err := a.client.Profile(ctx)
	if err != nil {
		return a.fail(err)
	}

	if len(p.Session.History) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return nil
	}
	for _, post := range p.Session.History {
		fmt.Fprintf(a.out, "%s - %s\n", post.PostedAt.Format(timeLayout), post.Text)
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.client.Profile(ctx)
	if err != nil {
		return a.fail(err)
	}

	s := p.Session
	fmt.Fprintf(a.out, "Email: %s\nAge: %d\nPositive posts: %d\nNegative posts: %d\n",
		s.Email, s.Age, s.PositiveCount, s.NegativeCount)

	if p.PositiveBadge {
		fmt.Fprintln(a.out, "Badge: Positive Poster")
	}
	if p.NegativeBadge {
		fmt.Fprintln(a.out, "Badge: Negative Poster")
	}
	if s.LockoutUntil != nil && s.LockoutUntil.After(a.clock.Now()) {
		fmt.Fprintln(a.out, lockedOutMessage(*s.LockoutUntil))
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	counts, err := a.client.Distribution(ctx)
	if err != nil {
		return a.fail(err)
	}

	for _, l := range renderDistribution(counts) {
		fmt.Fprintln(a.out, l)
	}
	return nil
}

func (a *App) Export(ctx context.Context) error {
	res, err := a.client.Export(ctx)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "History exported. Download it before %s:\n%s\n",
		res.ExpiresAt.Format(timeLayout), res.URL)
	return nil
}
