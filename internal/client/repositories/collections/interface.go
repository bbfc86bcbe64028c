// Package collections stores the caller's collection memberships locally.
package collections

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
)

// Repository is the local collection store. Collections carry no secrets, so
// they are stored in the clear.
type Repository interface {
	// ReplaceAll swaps the stored set for the one from the latest sync.
	ReplaceAll(ctx context.Context, cs []models.Collection) error

	// GetAll lists all collections.
	GetAll(ctx context.Context) ([]models.Collection, error)
}
