package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type fakeEventsRepo struct {
	created []*models.Event
	err     error
}

func (f *fakeEventsRepo) Create(ctx context.Context, event *models.Event) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}

func TestEventCollect_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeEventsRepo{}
	s := NewEventService(db, &fakeRepoManager{ev: repo})

	if err := s.Collect(context.Background(), "u1", "record_viewed", "r1"); err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("event not stored")
	}
	e := repo.created[0]
	if e.UserID != "u1" || e.Kind != "record_viewed" || e.RecordID != "r1" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.ID == "" {
		t.Fatalf("event id not assigned")
	}
}

func TestEventCollect_Error(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewEventService(db, &fakeRepoManager{ev: &fakeEventsRepo{err: errBoom{}}})

	err := s.Collect(context.Background(), "u1", "record_viewed", "r1")
	if err == nil || !regexp.MustCompile(`error storing event: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
