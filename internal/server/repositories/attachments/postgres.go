package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/dbx"
	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, recordID string, attachmentID string) (*models.Attachment, string, error) {
	query :=
		`SELECT a.id, a.record_id, a.file_name, a.size, a.storage_key, a.fallback_url, rec.user_id
		 FROM attachments a
		 JOIN records rec ON rec.id = a.record_id
		 WHERE a.id = $1 AND a.record_id = $2
		 `

	att := &models.Attachment{}
	var ownerID string
	err := r.db.QueryRowContext(ctx, query, attachmentID, recordID).Scan(
		&att.ID, &att.RecordID, &att.FileName, &att.Size, &att.StorageKey, &att.FallbackURL, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("db error: %w", err)
	}

	return att, ownerID, nil
}
