package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values with a time to live.
// GetJSON reports false when the key is absent or expired.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}
