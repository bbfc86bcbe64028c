// Package records stores encrypted vault records in the local SQLite cache.
package records

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
)

// Repository is the local encrypted record store.
type Repository interface {
	// CreateOrUpdate upserts a record row by id.
	CreateOrUpdate(ctx context.Context, r *models.EncryptedRecord) error

	// GetAll lists all rows, including soft-deleted ones, in insertion order.
	GetAll(ctx context.Context) ([]models.EncryptedRecord, error)

	// GetByID fetches one row. Missing rows yield common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.EncryptedRecord, error)

	// DeleteByID soft-deletes a row.
	DeleteByID(ctx context.Context, id string) error
}
