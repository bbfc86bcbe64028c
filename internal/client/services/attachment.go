package services

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/vaultview/internal/client/api"
	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/cryptox"
	"github.com/dmitrijs2005/vaultview/internal/logging"
	"github.com/dmitrijs2005/vaultview/internal/netx"
)

// KeyProvider resolves the symmetric key of an organization the user belongs
// to. Attachments without their own key are encrypted under it.
type KeyProvider interface {
	OrganizationKey(ctx context.Context, orgID string) ([]byte, error)
}

// FileDeliverer hands decrypted attachment content to its destination,
// typically a file on disk.
type FileDeliverer interface {
	Deliver(fileName string, data []byte) error
}

// AttachmentService retrieves, decrypts, and delivers vault attachments.
//
// Each attachment is fetched at most once at a time: concurrent requests for
// the same attachment id coalesce onto a single download, and Downloading
// exposes the in-flight flag so a UI can disable the control while it runs.
type AttachmentService struct {
	client api.Client
	http   *http.Client
	keys   KeyProvider
	files  FileDeliverer
	log    logging.Logger

	group singleflight.Group

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewAttachmentService wires the retrieval pipeline.
func NewAttachmentService(client api.Client, httpClient *http.Client, keys KeyProvider, files FileDeliverer, log logging.Logger) *AttachmentService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &AttachmentService{
		client:   client,
		http:     httpClient,
		keys:     keys,
		files:    files,
		log:      log,
		inFlight: make(map[string]bool),
	}
}

// Downloading reports whether a retrieval for the attachment id is running.
func (s *AttachmentService) Downloading(attachmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[attachmentID]
}

func (s *AttachmentService) setInFlight(attachmentID string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.inFlight[attachmentID] = true
	} else {
		delete(s.inFlight, attachmentID)
	}
}

// Download runs the full pipeline for one attachment and returns the
// decrypted content. Concurrent calls for the same attachment share one
// execution and all receive its result.
//
// The order of checks matters: premium eligibility is decided locally from
// the token claims before any network traffic. A server that cannot mint a
// fresh address (common.ErrorNotFound) falls back to the attachment's stored
// URL; any other address failure aborts. The presigned fetch itself is
// never retried. Decryption failures surface only as common.ErrDecryption.
func (s *AttachmentService) Download(ctx context.Context, rec *models.Record, att models.Attachment) ([]byte, error) {
	v, err, _ := s.group.Do(att.ID, func() (any, error) {
		return s.download(ctx, rec, att)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *AttachmentService) download(ctx context.Context, rec *models.Record, att models.Attachment) ([]byte, error) {
	s.setInFlight(att.ID, true)
	defer s.setInFlight(att.ID, false)

	if rec.OrganizationID == "" && !s.client.Premium() {
		return nil, common.ErrPremiumRequired
	}

	url, err := s.client.AttachmentURL(ctx, rec.ID, att.ID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		// The server has no fresh address for this attachment; fall back to
		// the one stored with the record.
		if att.URL == "" {
			return nil, err
		}
		url = att.URL
	}

	blob, err := netx.FetchPresignedURL(ctx, s.http, url)
	if err != nil {
		return nil, err
	}

	key := att.Key
	if key == nil {
		if s.keys == nil || rec.OrganizationID == "" {
			return nil, common.ErrDecryption
		}
		key, err = s.keys.OrganizationKey(ctx, rec.OrganizationID)
		if err != nil {
			s.log.Debug(ctx, "organization key unavailable", "org_id", rec.OrganizationID, "error", err)
			return nil, common.ErrDecryption
		}
	}

	data, err := cryptox.OpenBlob(blob, key)
	if err != nil {
		return nil, common.ErrDecryption
	}
	return data, nil
}

// DownloadToFile runs Download and hands the result to the file deliverer.
func (s *AttachmentService) DownloadToFile(ctx context.Context, rec *models.Record, att models.Attachment) error {
	data, err := s.Download(ctx, rec, att)
	if err != nil {
		return err
	}
	return s.files.Deliver(att.FileName, data)
}

// StaticKeyProvider serves organization keys from an in-memory map, loaded
// at unlock time.
type StaticKeyProvider struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewStaticKeyProvider returns an empty provider.
func NewStaticKeyProvider() *StaticKeyProvider {
	return &StaticKeyProvider{keys: make(map[string][]byte)}
}

// Set stores the key for an organization.
func (p *StaticKeyProvider) Set(orgID string, key []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys[orgID] = key
}

// OrganizationKey implements KeyProvider.
func (p *StaticKeyProvider) OrganizationKey(_ context.Context, orgID string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	key, ok := p.keys[orgID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return key, nil
}
