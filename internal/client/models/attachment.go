package models

// Attachment describes an encrypted file hanging off a record.
//
// Key is the attachment-specific symmetric key; when nil the blob is
// encrypted under the owning organization's key instead. URL is the stored
// fallback address used when the server cannot issue a fresh short-lived one.
type Attachment struct {
	ID       string `json:"id"`
	RecordID string `json:"recordId"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Key      []byte `json:"key,omitempty"`
	URL      string `json:"url,omitempty"`
}
