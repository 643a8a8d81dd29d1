// Package accounts implements the PostgreSQL repository for account rows.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/dbx"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. A taken email yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) error {
	query :=
		`INSERT INTO accounts (id, email, password_salt, password_hash, age, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordSalt, a.PasswordHash, a.Age, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, email, password_salt, password_hash, age,
		        positive_count, negative_count, lockout_until, created_at
		 FROM accounts
		 WHERE email = $1
		 `

	a := &models.Account{}
	var lockout sql.NullTime
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordSalt, &a.PasswordHash, &a.Age,
		&a.PositiveCount, &a.NegativeCount, &lockout, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lockout.Valid {
		t := lockout.Time
		a.LockoutUntil = &t
	}

	return a, nil
}

// Upsert writes the account row, replacing counters and lockout when the
// email already exists.
func (r *PostgresRepository) Upsert(ctx context.Context, a *models.Account) error {
	query :=
		`INSERT INTO accounts (id, email, password_salt, password_hash, age,
		                       positive_count, negative_count, lockout_until, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (email) DO UPDATE
		 SET positive_count = EXCLUDED.positive_count,
		     negative_count = EXCLUDED.negative_count,
		     lockout_until = EXCLUDED.lockout_until
		 `

	var lockout sql.NullTime
	if a.LockoutUntil != nil {
		lockout = sql.NullTime{Time: *a.LockoutUntil, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordSalt, a.PasswordHash, a.Age,
		a.PositiveCount, a.NegativeCount, lockout, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
