package collections

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/dbx"
	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]*models.Collection, error) {
	query :=
		`SELECT c.id, c.organization_id, c.name, uc.read_only
		 FROM collections c
		 JOIN user_collections uc ON uc.collection_id = c.id
		 WHERE uc.user_id = $1
		 ORDER BY c.name
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Collection
	for rows.Next() {
		c := &models.Collection{}
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.ReadOnly); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
