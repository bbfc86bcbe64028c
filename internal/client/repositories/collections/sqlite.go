package collections

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
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

// ReplaceAll wipes the table and inserts the given set. The read_only column
// stays nullable so the tri-state flag survives the round trip.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, cs []models.Collection) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}

	query := `INSERT INTO collections (id, organization_id, name, read_only) VALUES (?, ?, ?, ?)`
	for _, c := range cs {
		var ro any
		if c.ReadOnly != nil {
			ro = *c.ReadOnly
		}
		if _, err := r.db.ExecContext(ctx, query, c.ID, c.OrganizationID, c.Name, ro); err != nil {
			return fmt.Errorf("failed to insert collection: %w", err)
		}
	}
	return nil
}

// GetAll lists all collections.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, organization_id, name, read_only FROM collections`)
	if err != nil {
		return nil, fmt.Errorf("failed to select collections: %w", err)
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		var item models.Collection
		var ro sql.NullBool
		if err := rows.Scan(&item.ID, &item.OrganizationID, &item.Name, &ro); err != nil {
			return nil, err
		}
		if ro.Valid {
			item.ReadOnly = &ro.Bool
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
