// Package store is the durable home of accounts. Services talk to the
// AccountStore interface; MemoryStore backs a single process and
// PostgresStore survives restarts.
package store

import (
	"context"

	"github.com/dmitrijs2005/postguard/internal/server/models"
)

// AccountStore persists accounts keyed by email.
//
// Create fails with common.ErrorAlreadyExists for a taken email. Find fails
// with common.ErrorNotFound. Save writes counters, lockout and history and is
// safe to repeat with the same account.
type AccountStore interface {
	Create(ctx context.Context, a *models.Account) error
	Find(ctx context.Context, email string) (*models.Account, error)
	Save(ctx context.Context, a *models.Account) error
}
