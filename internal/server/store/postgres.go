package store

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postguard/internal/dbx"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/repositories/repomanager"
)

// PostgresStore composes the accounts and posts repositories.
type PostgresStore struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewPostgresStore(db *sql.DB, rm repomanager.RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, rm: rm}
}

func (s *PostgresStore) Create(ctx context.Context, a *models.Account) error {
	return s.rm.Accounts(s.db).Create(ctx, a)
}

func (s *PostgresStore) Find(ctx context.Context, email string) (*models.Account, error) {
	a, err := s.rm.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	a.History, err = s.rm.Posts(s.db).ListByAccount(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Save upserts the account row and appends any history entries not yet
// stored, in one transaction.
func (s *PostgresStore) Save(ctx context.Context, a *models.Account) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Accounts(tx).Upsert(ctx, a); err != nil {
			return err
		}
		return s.rm.Posts(tx).Append(ctx, a.ID, a.History)
	})
}
