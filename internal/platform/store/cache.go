package store

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is read-through memoization with per-key TTL over the KV seam.
// No stampede protection; KV failures bypass the cache and the fresh value
// is still returned.
type Cache struct {
	kv KV
}

// NewCache builds a Cache over kv
func NewCache(kv KV) Cache { return Cache{kv: kv} }

// Through returns the cached string for key, or computes, stores, and
// returns it. fn errors propagate; store errors do not.
func (c Cache) Through(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fn func(ctx context.Context) (string, error),
) (string, error) {
	if v, ok, err := c.kv.Get(ctx, key); err == nil && ok {
		return v, nil
	}
	v, err := fn(ctx)
	if err != nil {
		return "", err
	}
	// best effort write; a failed store just means a recompute next time
	_ = c.kv.Set(ctx, key, v, ttl)
	return v, nil
}

// ThroughJSON memoizes a typed value as JSON under key
func ThroughJSON[T any](
	ctx context.Context,
	c Cache,
	key string,
	ttl time.Duration,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	if raw, ok, err := c.kv.Get(ctx, key); err == nil && ok {
		var v T
		if jerr := json.Unmarshal([]byte(raw), &v); jerr == nil {
			return v, nil
		}
		// corrupt entry; fall through and overwrite
	}
	v, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	if raw, jerr := json.Marshal(v); jerr == nil {
		_ = c.kv.Set(ctx, key, string(raw), ttl)
	}
	return v, nil
}
