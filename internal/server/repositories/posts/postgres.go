// Package posts implements the PostgreSQL repository for account history.
package posts

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postguard/internal/dbx"
	"github.com/dmitrijs2005/postguard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// appendBatch bounds the rows per INSERT so the statement stays under the
// PostgreSQL limit of 65535 bind parameters.
const appendBatch = 1000

// Append stores ps with one multi-row INSERT per batch. Posts already stored
// under the same id are left as they are.
func (r *PostgresRepository) Append(ctx context.Context, accountID string, ps []models.Post) error {
	for len(ps) > 0 {
		n := min(len(ps), appendBatch)
		if err := r.insertBatch(ctx, accountID, ps[:n]); err != nil {
			return err
		}
		ps = ps[n:]
	}
	return nil
}

func (r *PostgresRepository) insertBatch(ctx context.Context, accountID string, ps []models.Post) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO posts (id, account_id, text, posted_at, sentiment, relevance)\n\t\t VALUES ")

	args := make([]any, 0, len(ps)*6)
	for i, p := range ps {
		if i > 0 {
			sb.WriteString(", ")
		}
		k := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", k+1, k+2, k+3, k+4, k+5, k+6)
		args = append(args, p.ID, accountID, p.Text, p.PostedAt, string(p.Sentiment), string(p.Relevance))
	}
	sb.WriteString("\n\t\t ON CONFLICT (id) DO NOTHING")

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// ListByAccount returns the account's posts in submission order.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]models.Post, error) {
	query :=
		`SELECT id, text, posted_at, sentiment, relevance
		 FROM posts
		 WHERE account_id = $1
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Post
	for rows.Next() {
		var p models.Post
		var sentiment, relevance string
		if err := rows.Scan(&p.ID, &p.Text, &p.PostedAt, &sentiment, &relevance); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Sentiment = models.Sentiment(sentiment)
		p.Relevance = models.Relevance(relevance)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
