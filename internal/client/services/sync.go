package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vaultview/internal/client/api"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/collections"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/records"
	"github.com/dmitrijs2005/vaultview/internal/dbx"
	"github.com/dmitrijs2005/vaultview/internal/logging"
)

// SyncService pulls the encrypted vault from the server into the local
// store. Records stay encrypted throughout; only the repositories touch
// their envelopes.
type SyncService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger
}

// NewSyncService wires a sync service over the local database.
func NewSyncService(client api.Client, db *sql.DB, log logging.Logger) *SyncService {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &SyncService{client: client, db: db, log: log}
}

// Pull fetches the full vault and applies it in one transaction, so a failed
// sync never leaves the store half-updated. Returns the number of records
// applied.
func (s *SyncService) Pull(ctx context.Context) (int, error) {
	resp, err := s.client.Sync(ctx)
	if err != nil {
		return 0, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		recRepo := records.NewSQLiteRepository(tx)
		for i := range resp.Records {
			if err := recRepo.CreateOrUpdate(ctx, &resp.Records[i]); err != nil {
				return err
			}
		}

		colRepo := collections.NewSQLiteRepository(tx)
		return colRepo.ReplaceAll(ctx, resp.Collections)
	})
	if err != nil {
		return 0, err
	}

	s.log.Info(ctx, "vault synced", "records", len(resp.Records), "collections", len(resp.Collections))
	return len(resp.Records), nil
}
