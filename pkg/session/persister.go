package session

import "context"

// Persister is the durable backing for session records.
// Load returns ErrNotFound when no record exists for key. Backend failures
// are wrapped with ErrStorageUnavailable.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
