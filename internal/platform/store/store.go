// Package store provides a unified interface to the shared key-value backend
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkarena/internal/platform/logger"
)

// Store is the facade over the KV backend
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// KV is the key-value seam, nil when disabled
	KV KV
}

// Member is a sorted-set member with its score
type Member struct {
	Member string
	Score  float64
}

// KV is the typed surface repos use against the key-value backend.
// Missing values surface as (zero, false, nil), never as errors.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// SetNX sets key to value only when absent; the lease-lock primitive
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	IncrBy(ctx context.Context, key string, delta int64) (int64, error)

	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HDel(ctx context.Context, key string, fields ...string) error

	ZAdd(ctx context.Context, key string, members ...Member) error
	ZRem(ctx context.Context, key string, members ...string) error
	ZScore(ctx context.Context, key, member string) (float64, bool, error)
	ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error)
	ZCard(ctx context.Context, key string) (int64, error)
	ZCount(ctx context.Context, key string, min, max float64) (int64, error)
	ZRangeByRank(ctx context.Context, key string, start, stop int64, desc bool) ([]Member, error)
	ZRangeByScore(ctx context.Context, key string, min, max float64, desc bool) ([]Member, error)
	ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error)

	Ping(ctx context.Context) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.Redis.Enabled {
		kv, err := openRedis(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.KV = kv
	}

	return s, nil
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if s.KV != nil {
		if err := s.KV.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("kv: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	var errs []error

	if c, ok := s.KV.(interface{ Close() error }); ok {
		if e := c.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	return errors.Join(errs...)
}
