package ledger

import "context"

// Backend is a key/value object store holding whole ledger documents.
// Get returns ErrNotFound when the key has never been written.
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	// Location is the address reported to callers for key.
	Location(key string) string
}
