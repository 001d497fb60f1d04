package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/products"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository instances bound to a DBTX, so services
// can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Products(db dbx.DBTX) products.Repository
}
