// Package repo provides KV persistence for boost inventories and activations
package repo

import (
	"context"
	"math"
	"strconv"
	"time"

	"inkarena/internal/modkit/repokit"
	"inkarena/internal/platform/store"
	"inkarena/internal/services/boosts/domain"
)

// Repo is the minimal persistence surface for boosts
type Repo interface {
	// AdjustInventory changes an item count and returns the new value
	AdjustInventory(ctx context.Context, userID, item string, delta int64) (int64, error)
	Inventory(ctx context.Context, userID string) (map[string]int64, error)

	// SaveActivation persists the activation hash and indexes it by expiry
	SaveActivation(ctx context.Context, a domain.Activation, ttl time.Duration) error
	LoadActivation(ctx context.Context, id string) (domain.Activation, bool, error)
	// LiveActivationIDs returns ids expiring after now
	LiveActivationIDs(ctx context.Context, userID string, now time.Time) ([]string, error)
	// PruneExpired drops index entries and hashes expiring at or before now
	PruneExpired(ctx context.Context, userID string, now time.Time) error
	RemoveActivation(ctx context.Context, userID, id string) error
}

type (
	// KV is a binder that wires the repo to a key-value store
	KV struct{}
	// queries implements the Repo interface
	queries struct{ kv repokit.KV }
)

// NewKV returns a binder for the boosts repo
func NewKV() repokit.Binder[Repo] { return KV{} }

// Bind wires a key-value store to the repo
func (KV) Bind(kv repokit.KV) Repo { return &queries{kv: kv} }

func (r *queries) AdjustInventory(ctx context.Context, userID, item string, delta int64) (int64, error) {
	return r.kv.HIncrBy(ctx, store.KeyUserInventory(userID), item, delta)
}

func (r *queries) Inventory(ctx context.Context, userID string) (map[string]int64, error) {
	raw, err := r.kv.HGetAll(ctx, store.KeyUserInventory(userID))
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for item, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out[item] = n
	}
	return out, nil
}

func (r *queries) SaveActivation(ctx context.Context, a domain.Activation, ttl time.Duration) error {
	fields := map[string]string{
		"user_id":      a.UserID,
		"item":         a.Item,
		"kind":         a.Kind,
		"multiplier":   strconv.FormatFloat(a.Multiplier, 'g', -1, 64),
		"extra_time":   strconv.FormatInt(int64(a.ExtraTime/time.Second), 10),
		"expires_at":   strconv.FormatInt(a.ExpiresAt.Unix(), 10),
	}
	if err := r.kv.HSet(ctx, store.KeyBoost(a.ID), fields); err != nil {
		return err
	}
	if err := r.kv.Expire(ctx, store.KeyBoost(a.ID), ttl); err != nil {
		return err
	}
	return r.kv.ZAdd(ctx, store.KeyUserActiveBoosts(a.UserID), repokit.Member{
		Member: a.ID,
		Score:  float64(a.ExpiresAt.Unix()),
	})
}

func (r *queries) LoadActivation(ctx context.Context, id string) (domain.Activation, bool, error) {
	fields, err := r.kv.HGetAll(ctx, store.KeyBoost(id))
	if err != nil {
		return domain.Activation{}, false, err
	}
	if len(fields) == 0 {
		return domain.Activation{}, false, nil
	}
	a := domain.Activation{
		ID:     id,
		UserID: fields["user_id"],
		Item:   fields["item"],
		Kind:   fields["kind"],
	}
	a.Multiplier, _ = strconv.ParseFloat(fields["multiplier"], 64)
	if secs, err := strconv.ParseInt(fields["extra_time"], 10, 64); err == nil {
		a.ExtraTime = time.Duration(secs) * time.Second
	}
	if ts, err := strconv.ParseInt(fields["expires_at"], 10, 64); err == nil {
		a.ExpiresAt = time.Unix(ts, 0).UTC()
	}
	return a, true, nil
}

func (r *queries) LiveActivationIDs(ctx context.Context, userID string, now time.Time) ([]string, error) {
	ms, err := r.kv.ZRangeByScore(ctx, store.KeyUserActiveBoosts(userID),
		float64(now.Unix()+1), math.Inf(1), false)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Member)
	}
	return out, nil
}

func (r *queries) PruneExpired(ctx context.Context, userID string, now time.Time) error {
	expired, err := r.kv.ZRangeByScore(ctx, store.KeyUserActiveBoosts(userID),
		math.Inf(-1), float64(now.Unix()), false)
	if err != nil {
		return err
	}
	for _, m := range expired {
		if err := r.RemoveActivation(ctx, userID, m.Member); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) RemoveActivation(ctx context.Context, userID, id string) error {
	if err := r.kv.ZRem(ctx, store.KeyUserActiveBoosts(userID), id); err != nil {
		return err
	}
	return r.kv.Del(ctx, store.KeyBoost(id))
}
