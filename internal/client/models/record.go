// Package models defines the decrypted vault record types the client
// operates on, plus the encrypted row shape stored locally.
package models

import "time"

// RecordType classifies a record kind.
type RecordType string

const (
	RecordTypeLogin      RecordType = "login"
	RecordTypeCard       RecordType = "card"
	RecordTypeIdentity   RecordType = "identity"
	RecordTypeSecureNote RecordType = "note"
)

// Record is a fully decrypted vault record as presented to the view layer.
//
// OrganizationID is empty for individually-owned records. Reprompt marks
// records whose sensitive actions require the user to re-confirm identity
// first.
type Record struct {
	ID                  string       `json:"id"`
	Type                RecordType   `json:"type"`
	Name                string       `json:"name"`
	OrganizationID      string       `json:"organizationId,omitempty"`
	OrganizationUseTotp bool         `json:"organizationUseTotp,omitempty"`
	CollectionIDs       []string     `json:"collectionIds,omitempty"`
	FolderID            string       `json:"folderId,omitempty"`
	Favorite            bool         `json:"favorite,omitempty"`
	Deleted             bool         `json:"deleted,omitempty"`
	Reprompt            bool         `json:"reprompt,omitempty"`
	Login               *Login       `json:"login,omitempty"`
	Card                *Card        `json:"card,omitempty"`
	Identity            *Identity    `json:"identity,omitempty"`
	SecureNote          *SecureNote  `json:"secureNote,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty"`
}

// Login holds credential data: endpoint URIs, the password, an optional
// authenticator secret, and metadata of linked passkeys.
type Login struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	URIs     []string  `json:"uris,omitempty"`
	Totp     string    `json:"totp,omitempty"`
	Passkeys []Passkey `json:"passkeys,omitempty"`
}

// HasURIs reports whether at least one endpoint URI is present.
func (l *Login) HasURIs() bool {
	return l != nil && len(l.URIs) > 0
}

// Passkey is the metadata of an external credential linked to a login.
// The private key material itself never reaches the view layer.
type Passkey struct {
	CredentialID string    `json:"credentialId"`
	RPID         string    `json:"rpId"`
	PublicKey    string    `json:"publicKey"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Card holds payment card data.
type Card struct {
	CardholderName string `json:"cardholderName"`
	Number         string `json:"number"`
	Brand          string `json:"brand"`
	ExpMonth       string `json:"expMonth"`
	ExpYear        string `json:"expYear"`
	Code           string `json:"code"`
}

// Identity holds personal identity data.
type Identity struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// SecureNote holds free-form text.
type SecureNote struct {
	Text string `json:"text"`
}

// Overview is the subset of a record shown in lists. Stored encrypted
// separately from the full payload so listing does not decrypt everything.
type Overview struct {
	Type RecordType `json:"type"`
	Name string     `json:"name"`
}

// ViewOverview is a decrypted list row.
type ViewOverview struct {
	ID   string
	Type string
	Name string
}

// EncryptedRecord is the wire/storage shape of a record: two AES-GCM
// envelopes (overview, details) with their nonces.
type EncryptedRecord struct {
	ID            string `json:"id"`
	Overview      []byte `json:"overview"`
	NonceOverview []byte `json:"nonceOverview"`
	Details       []byte `json:"details"`
	NonceDetails  []byte `json:"nonceDetails"`
	Deleted       bool   `json:"deleted"`
}
