package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postguard/internal/dbx"
	"github.com/dmitrijs2005/postguard/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/postguard/internal/server/repositories/posts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Posts(db dbx.DBTX) posts.Repository
}
