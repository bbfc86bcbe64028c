// Package repomanager wires concrete repository implementations to the
// storage backend and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vaultview/internal/dbx"
	"github.com/dmitrijs2005/vaultview/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/vaultview/internal/server/repositories/collections"
	"github.com/dmitrijs2005/vaultview/internal/server/repositories/events"
	"github.com/dmitrijs2005/vaultview/internal/server/repositories/records"
	"github.com/dmitrijs2005/vaultview/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/vaultview/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a particular DBTX, so
// services can compose several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Records(db dbx.DBTX) records.Repository
	Collections(db dbx.DBTX) collections.Repository
	Attachments(db dbx.DBTX) attachments.Repository
	Events(db dbx.DBTX) events.Repository
}
