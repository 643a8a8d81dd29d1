package posts

import (
	"context"

	"github.com/dmitrijs2005/postguard/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, accountID string, ps []models.Post) error
	ListByAccount(ctx context.Context, accountID string) ([]models.Post, error)
}
