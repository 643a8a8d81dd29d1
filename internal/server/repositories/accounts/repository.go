package accounts

import (
	"context"

	"github.com/dmitrijs2005/postguard/internal/server/models"
)

// Repository persists the account row. History lives in the posts repository.
type Repository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Upsert(ctx context.Context, a *models.Account) error
}
