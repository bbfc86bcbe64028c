package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateOrUpdate upserts a record by id. On conflict, envelope columns and
// the deleted flag are updated.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, rec *models.EncryptedRecord) error {
	query := `INSERT INTO records (id, overview, nonce_overview, details, nonce_details, deleted)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET overview = excluded.overview,
				nonce_overview = excluded.nonce_overview,
				details = excluded.details,
				nonce_details = excluded.nonce_details,
				deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Overview, rec.NonceOverview, rec.Details, rec.NonceDetails, rec.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

// GetAll lists all rows in rowid order, which preserves the upstream sync
// order the report engine depends on.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.EncryptedRecord, error) {
	query := `SELECT id, overview, nonce_overview, details, nonce_details, deleted
			FROM records ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.EncryptedRecord
	for rows.Next() {
		var item models.EncryptedRecord
		if err := rows.Scan(&item.ID, &item.Overview, &item.NonceOverview,
			&item.Details, &item.NonceDetails, &item.Deleted); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID fetches a single row by id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.EncryptedRecord, error) {
	query := `SELECT id, overview, nonce_overview, details, nonce_details, deleted
			FROM records WHERE id = ?`

	var item models.EncryptedRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Overview,
		&item.NonceOverview, &item.Details, &item.NonceDetails, &item.Deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select record: %w", err)
	}
	return &item, nil
}

// DeleteByID marks a record as deleted (soft delete). It expects exactly one
// row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	query := `UPDATE records SET deleted = 1 WHERE id = ? AND deleted = 0`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
