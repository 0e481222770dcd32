package store

import (
	"context"
	"time"
)

// Limiter implements a sliding-window rate limit over the KV seam.
// Resolution is coarse: one counter bucket per window, expiry set on the
// first increment. Over any window at most limit+1 calls pass.
type Limiter struct{ kv KV }

// NewLimiter builds a Limiter over kv
func NewLimiter(kv KV) Limiter { return Limiter{kv: kv} }

// Limited increments the counter and reports whether the caller exceeded limit
func (l Limiter) Limited(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	n, err := l.kv.IncrBy(ctx, key, 1)
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.kv.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}
	return n > limit, nil
}
