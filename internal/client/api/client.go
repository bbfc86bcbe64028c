// Package api implements the client for the upstream vault API.
package api

import (
	"context"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
)

// SyncResponse is the payload of a full vault pull: encrypted records plus
// the caller's collection memberships.
type SyncResponse struct {
	Records     []models.EncryptedRecord `json:"records"`
	Collections []models.Collection      `json:"collections"`
}

// Client is the upstream vault API boundary.
//
// AttachmentURL fails with common.ErrorNotFound specifically when the server
// cannot issue a fresh address for the attachment; callers use that to fall
// back to the attachment's stored URL. Any other failure is fatal for the
// operation in progress.
type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	Ping(ctx context.Context) error
	Sync(ctx context.Context) (*SyncResponse, error)
	AttachmentURL(ctx context.Context, recordID, attachmentID string) (string, error)
	CollectEvent(ctx context.Context, kind string, recordID string) error

	// Premium reports whether the authenticated account has premium access,
	// as asserted by the access token claims.
	Premium() bool
}
