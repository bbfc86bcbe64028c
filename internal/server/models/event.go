package models

import "time"

// Event is one usage telemetry row shipped by a client.
type Event struct {
	ID        string
	UserID    string
	Kind      string
	RecordID  string
	CreatedAt time.Time
}
