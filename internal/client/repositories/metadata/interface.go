// Package metadata stores small key/value auth metadata (username, salt,
// verifier) for offline login.
package metadata

import "context"

// Repository is a simple key/value store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
