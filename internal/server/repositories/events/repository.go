// Package events declares the server-side repository contract for the
// client activity log.
package events

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}
