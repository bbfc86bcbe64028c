package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/logging"
)

// Confirmer requests out-of-band interactive identity confirmation (e.g., a
// master-password prompt). It reports false when the user declines.
type Confirmer interface {
	Confirm(ctx context.Context) (bool, error)
}

// ViewSession holds the state of the single record currently in view: the
// code clock and the re-prompt confirmation.
//
// The session owns exactly one live clock at a time; showing another record
// cancels the previous clock before starting a new one. The confirmation is
// keyed to the record id it was granted for and is invalidated whenever the
// id changes.
type ViewSession struct {
	log         logging.Logger
	confirmer   Confirmer
	events      *EventService
	attachments *AttachmentService

	mu          sync.Mutex
	record      *models.Record
	clock       *CodeClock
	confirmedID string
	premium     bool
}

// NewViewSession wires a session for one vault view.
func NewViewSession(confirmer Confirmer, events *EventService, attachments *AttachmentService, premium bool, log logging.Logger) *ViewSession {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &ViewSession{
		log:         log,
		confirmer:   confirmer,
		events:      events,
		attachments: attachments,
		premium:     premium,
	}
}

// Show switches the session to rec, replacing the previous record.
//
// The old clock handle is always cancelled first; a fresh one is started
// only for logins carrying an authenticator secret the caller may use
// (organization-enabled or premium). An invalid secret degrades silently:
// the clock just stays stopped.
func (s *ViewSession) Show(rec *models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.record == nil || s.record.ID != rec.ID

	s.stopClockLocked()
	if changed {
		s.confirmedID = ""
	}
	s.record = rec

	if rec.Type == models.RecordTypeLogin && rec.Login != nil && rec.Login.Totp != "" &&
		(rec.OrganizationUseTotp || s.premium) {
		clock := NewCodeClock(s.log)
		if err := clock.Start(rec.Login.Totp); err != nil {
			s.log.Debug(context.Background(), "otp clock not started", "record_id", rec.ID, "error", err)
		} else {
			s.clock = clock
		}
	}

	if changed && s.events != nil {
		s.events.Collect(EventRecordViewed, rec.ID)
	}
}

// Close tears the view down: cancels the clock and forgets the record and
// any confirmation granted for it.
func (s *ViewSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopClockLocked()
	s.record = nil
	s.confirmedID = ""
}

func (s *ViewSession) stopClockLocked() {
	if s.clock != nil {
		s.clock.Stop()
		s.clock = nil
	}
}

// Record returns the record currently in view, or nil.
func (s *ViewSession) Record() *models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// Totp returns a snapshot of the code countdown, and whether a code is
// currently being produced.
func (s *ViewSession) Totp() (TotpState, bool) {
	s.mu.Lock()
	clock := s.clock
	s.mu.Unlock()

	if clock == nil {
		return TotpState{}, false
	}
	return clock.State()
}

// Authorize gates a sensitive action on the record in view.
//
// Records without the re-prompt flag pass immediately, as does any record
// the user already confirmed for while it stayed in view. Otherwise the
// confirmer runs; a decline returns false with no error (the action is
// simply aborted) and leaves the session unconfirmed, so the next gated
// action prompts again.
func (s *ViewSession) Authorize(ctx context.Context) (bool, error) {
	s.mu.Lock()
	rec := s.record
	confirmed := rec != nil && s.confirmedID == rec.ID
	s.mu.Unlock()

	if rec == nil {
		return false, nil
	}
	if !rec.Reprompt || confirmed {
		return true, nil
	}

	ok, err := s.confirmer.Confirm(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	// The record may have been switched while the prompt was open; only
	// record the confirmation if it still applies.
	if s.record != nil && s.record.ID == rec.ID {
		s.confirmedID = rec.ID
	}
	s.mu.Unlock()
	return true, nil
}

// RevealPassword passes the gate and returns the login password. The second
// result is false when the gate declined or the record has no password.
func (s *ViewSession) RevealPassword(ctx context.Context) (string, bool, error) {
	rec := s.Record()
	if rec == nil || rec.Login == nil || rec.Login.Password == "" {
		return "", false, nil
	}

	ok, err := s.Authorize(ctx)
	if err != nil || !ok {
		return "", false, err
	}

	if s.events != nil {
		s.events.Collect(EventPasswordVisible, rec.ID)
	}
	return rec.Login.Password, true, nil
}

// CopyValue passes the gate for protected fields and reports whether the
// value may be handed to the clipboard collaborator.
func (s *ViewSession) CopyValue(ctx context.Context, value string, protected bool, kind EventKind) (bool, error) {
	rec := s.Record()
	if rec == nil || value == "" {
		return false, nil
	}

	if protected {
		ok, err := s.Authorize(ctx)
		if err != nil || !ok {
			return false, err
		}
	}

	if s.events != nil && kind != "" {
		s.events.Collect(kind, rec.ID)
	}
	return true, nil
}

// DownloadAttachment runs the retrieval pipeline for one of the record's
// attachments, gated by the re-prompt check.
func (s *ViewSession) DownloadAttachment(ctx context.Context, attachmentID string) ([]byte, error) {
	rec := s.Record()
	if rec == nil {
		return nil, nil
	}

	ok, err := s.Authorize(ctx)
	if err != nil || !ok {
		return nil, err
	}

	var att *models.Attachment
	for i := range rec.Attachments {
		if rec.Attachments[i].ID == attachmentID {
			att = &rec.Attachments[i]
			break
		}
	}
	if att == nil {
		return nil, nil
	}

	data, err := s.attachments.Download(ctx, rec, *att)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Collect(EventAttachmentDownloaded, rec.ID)
	}
	return data, nil
}
