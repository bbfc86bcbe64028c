package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/records"
	"github.com/dmitrijs2005/vaultview/internal/cryptox"
	"github.com/dmitrijs2005/vaultview/internal/logging"
)

// RecordService decrypts vault records out of the local store with the
// master key held for the unlocked session.
type RecordService struct {
	repo records.Repository
	key  []byte
	log  logging.Logger
}

// NewRecordService binds the store to the session master key.
func NewRecordService(repo records.Repository, key []byte, log logging.Logger) *RecordService {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &RecordService{repo: repo, key: key, log: log}
}

// List returns decrypted list rows for all live records, in store order.
// A row whose overview fails to decrypt is skipped with a log line rather
// than failing the whole listing.
func (s *RecordService) List(ctx context.Context) ([]models.ViewOverview, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.ViewOverview, 0, len(rows))
	for _, row := range rows {
		if row.Deleted {
			continue
		}
		var ov models.Overview
		if err := cryptox.DecryptEntry(row.Overview, row.NonceOverview, s.key, &ov); err != nil {
			s.log.Warn(ctx, "skipping undecryptable record", "record_id", row.ID, "error", err)
			continue
		}
		result = append(result, models.ViewOverview{ID: row.ID, Type: string(ov.Type), Name: ov.Name})
	}
	return result, nil
}

// Get decrypts one record in full.
func (s *RecordService) Get(ctx context.Context, id string) (*models.Record, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var rec models.Record
	if err := cryptox.DecryptEntry(row.Details, row.NonceDetails, s.key, &rec); err != nil {
		return nil, fmt.Errorf("failed to decrypt record %s: %w", id, err)
	}
	rec.ID = row.ID
	rec.Deleted = row.Deleted
	return &rec, nil
}

// AllDecrypted decrypts every record in store order, including soft-deleted
// ones, so downstream filters see the full vault. Undecryptable rows are
// skipped with a log line.
func (s *RecordService) AllDecrypted(ctx context.Context) ([]*models.Record, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.Record, 0, len(rows))
	for _, row := range rows {
		var rec models.Record
		if err := cryptox.DecryptEntry(row.Details, row.NonceDetails, s.key, &rec); err != nil {
			s.log.Warn(ctx, "skipping undecryptable record", "record_id", row.ID, "error", err)
			continue
		}
		rec.ID = row.ID
		rec.Deleted = row.Deleted
		result = append(result, &rec)
	}
	return result, nil
}
