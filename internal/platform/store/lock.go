package store

import (
	"context"
	"time"
)

// Locker implements lease locks over the KV seam.
// Locks are leases: holders must assume expiry mid-critical-section and keep
// the guarded write set idempotent.
type Locker struct{ kv KV }

// NewLocker builds a Locker over kv
func NewLocker(kv KV) Locker { return Locker{kv: kv} }

// Acquire returns true iff the key was set atomically from absent
func (l Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.kv.SetNX(ctx, key, "1", ttl)
}

// Release deletes the lock key; safe to call when not held
func (l Locker) Release(ctx context.Context, key string) error {
	return l.kv.Del(ctx, key)
}

// WithLock runs fn only when the lock is acquired and releases it after.
// Returns (false, nil) when the lock was already held.
func (l Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) (bool, error) {
	ok, err := l.Acquire(ctx, key, ttl)
	if err != nil || !ok {
		return false, err
	}
	defer func() { _ = l.Release(ctx, key) }()
	return true, fn(ctx)
}
