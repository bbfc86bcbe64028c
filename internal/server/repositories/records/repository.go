// Package records declares the server-side repository contract for
// encrypted vault records.
package records

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type Repository interface {
	// CreateOrUpdate inserts a record or overwrites an existing one with the
	// same id. The server never inspects the envelope contents.
	CreateOrUpdate(ctx context.Context, record *models.Record) error

	// SelectByUser returns every record owned by userID, including deleted
	// ones, ordered by update time.
	SelectByUser(ctx context.Context, userID string) ([]*models.Record, error)

	// GetByID returns a single record. Absent records yield common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Record, error)
}
