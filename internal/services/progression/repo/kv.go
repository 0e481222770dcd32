// Package repo provides KV persistence for user scores
package repo

import (
	"context"

	"inkarena/internal/modkit/repokit"
	"inkarena/internal/platform/store"
)

// Repo is the minimal persistence surface for progression
type Repo interface {
	Score(ctx context.Context, userID string) (float64, bool, error)
	SetScore(ctx context.Context, userID string, score float64) error
	IncrScore(ctx context.Context, userID string, delta float64) (float64, error)
	// Top returns the highest scores first
	Top(ctx context.Context, offset, limit int64) ([]repokit.Member, error)
}

type (
	// KV is a binder that wires the repo to a key-value store
	KV struct{}
	// queries implements the Repo interface
	queries struct{ kv repokit.KV }
)

// NewKV returns a binder for the progression repo
func NewKV() repokit.Binder[Repo] { return KV{} }

// Bind wires a key-value store to the repo
func (KV) Bind(kv repokit.KV) Repo { return &queries{kv: kv} }

func (r *queries) Score(ctx context.Context, userID string) (float64, bool, error) {
	return r.kv.ZScore(ctx, store.KeyScores(), userID)
}

func (r *queries) SetScore(ctx context.Context, userID string, score float64) error {
	return r.kv.ZAdd(ctx, store.KeyScores(), repokit.Member{Member: userID, Score: score})
}

func (r *queries) IncrScore(ctx context.Context, userID string, delta float64) (float64, error) {
	return r.kv.ZIncrBy(ctx, store.KeyScores(), delta, userID)
}

func (r *queries) Top(ctx context.Context, offset, limit int64) ([]repokit.Member, error) {
	return r.kv.ZRangeByRank(ctx, store.KeyScores(), offset, offset+limit-1, true)
}
