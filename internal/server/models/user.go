// Package models holds the server-side persistence shapes.
package models

import "time"

// User is an account row. Premium gates attachment retrieval for personal
// records; the flag is baked into issued access tokens so clients can check
// it without a round trip.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	Premium   bool
	CreatedAt time.Time
}
