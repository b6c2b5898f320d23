package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postwall/internal/dbx"
	"github.com/dmitrijs2005/postwall/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/postwall/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// owns schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
