// Package collections declares the server-side repository contract for
// organization collections and per-user membership.
package collections

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type Repository interface {
	// SelectByUser returns the collections the user belongs to, with the
	// membership's read_only flag attached.
	SelectByUser(ctx context.Context, userID string) ([]*models.Collection, error)
}
