package models

import "time"

// Record is a stored vault record. The server never sees plaintext: overview
// and details are AES-GCM envelopes produced by the client.
type Record struct {
	ID             string
	UserID         string
	OrganizationID string
	Overview       []byte
	NonceOverview  []byte
	Details        []byte
	NonceDetails   []byte
	Deleted        bool
	UpdatedAt      time.Time
}

// Collection is an organization-owned grouping of records. ReadOnly is the
// caller-specific access level and may be unset when the membership carries
// no explicit flag.
type Collection struct {
	ID             string
	OrganizationID string
	Name           string
	ReadOnly       *bool
}
