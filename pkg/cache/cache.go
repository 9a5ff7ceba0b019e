// Package cache stores computed layouts and rendered artifacts.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// servers sharing results, and [NullCache] to disable caching. A [Keyer]
// derives keys from content hashes and options, so equal inputs share an
// entry no matter where they came from.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Time-to-live for cached pipeline results. Layouts and artifacts are pure
// functions of their keys, so they only expire to bound storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
