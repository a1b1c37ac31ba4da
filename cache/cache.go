package cache

import (
	"context"
	"errors"
)

// Sentinel errors for cache operations.
var (
	ErrEncoding   = errors.New("cache: params cannot be encoded")
	ErrNilClient  = errors.New("cache: redis client is nil")
	ErrEmptyScope = errors.New("cache: namespace is required")
)

// Endpoint identifies a registered remote operation.
type Endpoint string

// String returns the endpoint name.
func (e Endpoint) String() string {
	return string(e)
}

// Store holds serialized results keyed by cache key.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: Get never errors; it returns (nil, false) on miss.
//   - Lifetime: entries are removed only by Delete or Reset, never expired.
type Store interface {
	// Get retrieves a stored value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Keys returns a snapshot of the keys currently stored.
	Keys(ctx context.Context) ([]string, error)

	// Reset discards every entry.
	Reset(ctx context.Context) error
}
