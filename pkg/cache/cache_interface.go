package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract used by the session store. Values are
// JSON encoded by the implementation.
type Cache interface {
	// Get decodes the value under key into dest.
	// found is false on a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
