package store

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"inkarena/internal/platform/logger"
)

// rdb adapts a go-redis client to the KV seam
type rdb struct {
	c   *redis.Client
	log logger.Logger
}

// openRedis dials redis from cfg and verifies connectivity
func openRedis(ctx context.Context, cfg Config, s *Store) (KV, error) {
	var opts *redis.Options
	if cfg.Redis.URL != "" {
		parsed, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	}
	if cfg.Redis.DialTimeout > 0 {
		opts.DialTimeout = cfg.Redis.DialTimeout
	}
	if cfg.Redis.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.Redis.ReadTimeout
	}
	if cfg.AppName != "" {
		opts.ClientName = cfg.AppName
	}

	client := redis.NewClient(opts)

	pingTimeout := cfg.Redis.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	s.Log.Debug().Str("addr", opts.Addr).Int("db", opts.DB).Msg("redis connected")
	return &rdb{c: client, log: s.Log}, nil
}

// NewRedisKV wraps an existing client; used by tests and embedded runners
func NewRedisKV(client *redis.Client) KV { return &rdb{c: client} }

func (r *rdb) Close() error { return r.c.Close() }

func (r *rdb) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *rdb) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.c.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *rdb) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.c.Set(ctx, key, value, ttl).Err()
}

func (r *rdb) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.c.Del(ctx, keys...).Err()
}

func (r *rdb) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.c.Exists(ctx, key).Result()
	return n > 0, err
}

func (r *rdb) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.c.Expire(ctx, key, ttl).Err()
}

func (r *rdb) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return r.c.SetNX(ctx, key, value, ttl).Result()
}

func (r *rdb) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return r.c.IncrBy(ctx, key, delta).Result()
}

func (r *rdb) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := r.c.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *rdb) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.c.HSet(ctx, key, fields).Err()
}

func (r *rdb) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.c.HGetAll(ctx, key).Result()
}

func (r *rdb) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	return r.c.HIncrBy(ctx, key, field, delta).Result()
}

func (r *rdb) HDel(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.c.HDel(ctx, key, fields...).Err()
}

func (r *rdb) ZAdd(ctx context.Context, key string, members ...Member) error {
	if len(members) == 0 {
		return nil
	}
	zs := make([]redis.Z, 0, len(members))
	for _, m := range members {
		zs = append(zs, redis.Z{Score: m.Score, Member: m.Member})
	}
	return r.c.ZAdd(ctx, key, zs...).Err()
}

func (r *rdb) ZRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, 0, len(members))
	for _, m := range members {
		args = append(args, m)
	}
	return r.c.ZRem(ctx, key, args...).Err()
}

func (r *rdb) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	v, err := r.c.ZScore(ctx, key, member).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (r *rdb) ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error) {
	return r.c.ZIncrBy(ctx, key, delta, member).Result()
}

func (r *rdb) ZCard(ctx context.Context, key string) (int64, error) {
	return r.c.ZCard(ctx, key).Result()
}

func (r *rdb) ZCount(ctx context.Context, key string, min, max float64) (int64, error) {
	return r.c.ZCount(ctx, key, formatScore(min), formatScore(max)).Result()
}

func (r *rdb) ZRangeByRank(ctx context.Context, key string, start, stop int64, desc bool) ([]Member, error) {
	var zs []redis.Z
	var err error
	if desc {
		zs, err = r.c.ZRevRangeWithScores(ctx, key, start, stop).Result()
	} else {
		zs, err = r.c.ZRangeWithScores(ctx, key, start, stop).Result()
	}
	if err != nil {
		return nil, err
	}
	return toMembers(zs), nil
}

func (r *rdb) ZRangeByScore(ctx context.Context, key string, min, max float64, desc bool) ([]Member, error) {
	by := &redis.ZRangeBy{Min: formatScore(min), Max: formatScore(max)}
	var zs []redis.Z
	var err error
	if desc {
		zs, err = r.c.ZRevRangeByScoreWithScores(ctx, key, by).Result()
	} else {
		zs, err = r.c.ZRangeByScoreWithScores(ctx, key, by).Result()
	}
	if err != nil {
		return nil, err
	}
	return toMembers(zs), nil
}

func (r *rdb) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	return r.c.ZRemRangeByRank(ctx, key, start, stop).Result()
}

func toMembers(zs []redis.Z) []Member {
	out := make([]Member, 0, len(zs))
	for _, z := range zs {
		m, _ := z.Member.(string)
		out = append(out, Member{Member: m, Score: z.Score})
	}
	return out
}

// formatScore renders score bounds the way redis range commands expect
func formatScore(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
