package store

import (
	"context"
	"time"
)

// Scoped returns a KV view with every key prefixed.
// The "global" namespace uses this to partition state per community.
func Scoped(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return scoped{kv: kv, prefix: prefix}
}

type scoped struct {
	kv     KV
	prefix string
}

func (s scoped) key(k string) string { return s.prefix + k }

func (s scoped) keys(ks []string) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = s.prefix + k
	}
	return out
}

func (s scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.kv.Get(ctx, s.key(key))
}

func (s scoped) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.kv.Set(ctx, s.key(key), value, ttl)
}

func (s scoped) Del(ctx context.Context, keys ...string) error {
	return s.kv.Del(ctx, s.keys(keys)...)
}

func (s scoped) Exists(ctx context.Context, key string) (bool, error) {
	return s.kv.Exists(ctx, s.key(key))
}

func (s scoped) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.kv.Expire(ctx, s.key(key), ttl)
}

func (s scoped) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.kv.SetNX(ctx, s.key(key), value, ttl)
}

func (s scoped) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.kv.IncrBy(ctx, s.key(key), delta)
}

func (s scoped) HGet(ctx context.Context, key, field string) (string, bool, error) {
	return s.kv.HGet(ctx, s.key(key), field)
}

func (s scoped) HSet(ctx context.Context, key string, fields map[string]string) error {
	return s.kv.HSet(ctx, s.key(key), fields)
}

func (s scoped) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return s.kv.HGetAll(ctx, s.key(key))
}

func (s scoped) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	return s.kv.HIncrBy(ctx, s.key(key), field, delta)
}

func (s scoped) HDel(ctx context.Context, key string, fields ...string) error {
	return s.kv.HDel(ctx, s.key(key), fields...)
}

func (s scoped) ZAdd(ctx context.Context, key string, members ...Member) error {
	return s.kv.ZAdd(ctx, s.key(key), members...)
}

func (s scoped) ZRem(ctx context.Context, key string, members ...string) error {
	return s.kv.ZRem(ctx, s.key(key), members...)
}

func (s scoped) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	return s.kv.ZScore(ctx, s.key(key), member)
}

func (s scoped) ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error) {
	return s.kv.ZIncrBy(ctx, s.key(key), delta, member)
}

func (s scoped) ZCard(ctx context.Context, key string) (int64, error) {
	return s.kv.ZCard(ctx, s.key(key))
}

func (s scoped) ZCount(ctx context.Context, key string, min, max float64) (int64, error) {
	return s.kv.ZCount(ctx, s.key(key), min, max)
}

func (s scoped) ZRangeByRank(ctx context.Context, key string, start, stop int64, desc bool) ([]Member, error) {
	return s.kv.ZRangeByRank(ctx, s.key(key), start, stop, desc)
}

func (s scoped) ZRangeByScore(ctx context.Context, key string, min, max float64, desc bool) ([]Member, error) {
	return s.kv.ZRangeByScore(ctx, s.key(key), min, max, desc)
}

func (s scoped) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	return s.kv.ZRemRangeByRank(ctx, s.key(key), start, stop)
}

func (s scoped) Ping(ctx context.Context) error { return s.kv.Ping(ctx) }
