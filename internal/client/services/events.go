package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/vaultview/internal/client/api"
	"github.com/dmitrijs2005/vaultview/internal/logging"
)

// EventKind enumerates the telemetry events the client records.
type EventKind string

const (
	EventRecordViewed         EventKind = "record_viewed"
	EventPasswordVisible      EventKind = "password_visible"
	EventPasswordCopied       EventKind = "password_copied"
	EventCardNumberVisible    EventKind = "card_number_visible"
	EventCardCodeVisible      EventKind = "card_code_visible"
	EventCardCodeCopied       EventKind = "card_code_copied"
	EventHiddenFieldCopied    EventKind = "hidden_field_copied"
	EventAttachmentDownloaded EventKind = "attachment_downloaded"
)

// EventService ships usage telemetry upstream. Events are recorded as
// detached background tasks: they never block the caller and their failures
// are only logged, never propagated.
type EventService struct {
	client  api.Client
	log     logging.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewEventService returns an EventService bound to the given API client.
func NewEventService(client api.Client, log logging.Logger) *EventService {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &EventService{client: client, log: log, timeout: 5 * time.Second}
}

// Collect records one event in the background and returns immediately.
func (s *EventService) Collect(kind EventKind, recordID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.client.CollectEvent(ctx, string(kind), recordID); err != nil {
			s.log.Warn(ctx, "telemetry event dropped", "kind", kind, "record_id", recordID, "error", err)
		}
	}()
}

// Flush waits for all in-flight events. Called on shutdown.
func (s *EventService) Flush() {
	s.wg.Wait()
}
