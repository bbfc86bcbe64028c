package models

import "database/sql"

// Attachment is the metadata row of an encrypted blob. StorageKey is null
// for legacy rows whose blob never moved to object storage; those are served
// through FallbackURL instead.
type Attachment struct {
	ID          string
	RecordID    string
	FileName    string
	Size        int64
	StorageKey  sql.NullString
	FallbackURL sql.NullString
}
