// Package attachments declares the server-side repository contract for
// attachment metadata.
package attachments

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type Repository interface {
	// GetByID returns attachment metadata together with the owning record's
	// user id, so callers can enforce ownership. Absent attachments yield
	// common.ErrorNotFound.
	GetByID(ctx context.Context, recordID string, attachmentID string) (*models.Attachment, string, error)
}
