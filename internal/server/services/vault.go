package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
	"github.com/dmitrijs2005/vaultview/internal/server/repomanager"
)

// VaultService serves full vault pulls. Records leave the server exactly as
// they were stored; decryption is strictly a client concern.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager) *VaultService {
	return &VaultService{db: db, repomanager: m}
}

// Sync returns every record owned by the user (deleted ones included, so the
// client can tombstone locally) together with the user's collection
// memberships.
func (s *VaultService) Sync(ctx context.Context, userID string) ([]*models.Record, []*models.Collection, error) {
	records, err := s.repomanager.Records(s.db).SelectByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error selecting records: %v", err)
	}

	collections, err := s.repomanager.Collections(s.db).SelectByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error selecting collections: %v", err)
	}

	return records, collections, nil
}
