package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
	"github.com/dmitrijs2005/vaultview/internal/server/repomanager"
)

// EventService records client activity (views, reveals, downloads) for the
// audit trail. Failures here never block the client flow that produced them.
type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager) *EventService {
	return &EventService{db: db, repomanager: m}
}

func (s *EventService) Collect(ctx context.Context, userID, kind, recordID string) error {
	event := &models.Event{ID: uuid.NewString(), UserID: userID, Kind: kind, RecordID: recordID}
	if err := s.repomanager.Events(s.db).Create(ctx, event); err != nil {
		return fmt.Errorf("error storing event: %v", err)
	}
	return nil
}
