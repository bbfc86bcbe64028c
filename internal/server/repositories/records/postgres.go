package records

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

func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, record *models.Record) error {
	query :=
		`INSERT INTO records (id, user_id, organization_id, overview, nonce_overview, details, nonce_details, deleted, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
         ON CONFLICT (id) DO UPDATE SET
             organization_id = EXCLUDED.organization_id,
             overview        = EXCLUDED.overview,
             nonce_overview  = EXCLUDED.nonce_overview,
             details         = EXCLUDED.details,
             nonce_details   = EXCLUDED.nonce_details,
             deleted         = EXCLUDED.deleted,
             updated_at      = now()
		 `

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.OrganizationID,
		record.Overview, record.NonceOverview, record.Details, record.NonceDetails,
		record.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]*models.Record, error) {
	query :=
		`SELECT id, user_id, organization_id, overview, nonce_overview, details, nonce_details, deleted, updated_at
		 FROM records
		 WHERE user_id = $1
		 ORDER BY updated_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		rec := &models.Record{}
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.OrganizationID,
			&rec.Overview, &rec.NonceOverview, &rec.Details, &rec.NonceDetails,
			&rec.Deleted, &rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	query :=
		`SELECT id, user_id, organization_id, overview, nonce_overview, details, nonce_details, deleted, updated_at
		 FROM records
		 WHERE id = $1
		 `

	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.OrganizationID,
		&rec.Overview, &rec.NonceOverview, &rec.Details, &rec.NonceDetails,
		&rec.Deleted, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}
