package events

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

func (r *PostgresRepository) Create(ctx context.Context, event *models.Event) error {
	query :=
		`INSERT INTO events (id, user_id, kind, record_id)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, event.ID, event.UserID, event.Kind, event.RecordID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
