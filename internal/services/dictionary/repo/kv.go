// Package repo provides KV persistence for community dictionaries
package repo

import (
	"context"

	"inkarena/internal/modkit/repokit"
	"inkarena/internal/platform/store"
)

// Repo is the minimal persistence surface for the dictionary
type Repo interface {
	Active(ctx context.Context, sub string) ([]repokit.Member, error)
	ActiveScore(ctx context.Context, sub, word string) (float64, bool, error)
	ActiveCount(ctx context.Context, sub string) (int64, error)
	AddActive(ctx context.Context, sub string, words ...repokit.Member) error
	// RemoveActive drops words and their bandit side-state
	RemoveActive(ctx context.Context, sub string, words ...string) error
	// ReplaceActive swaps the whole active set atomically enough for our
	// purposes: delete then re-add
	ReplaceActive(ctx context.Context, sub string, words []repokit.Member) error

	// SetUncertainty seeds or overwrites bandit uncertainty for words
	SetUncertainty(ctx context.Context, sub string, words ...repokit.Member) error

	Ban(ctx context.Context, sub, word string) error
	Unban(ctx context.Context, sub, word string) error
	IsBanned(ctx context.Context, sub, word string) (bool, error)

	RegisterCommunity(ctx context.Context, sub string) error
	CommunityExists(ctx context.Context, sub string) (bool, error)

	SetBacking(ctx context.Context, sub, word, commentID string) error
	BackingWord(ctx context.Context, sub, commentID string) (string, bool, error)
	RemoveBacking(ctx context.Context, sub, word, commentID string) error
}

type (
	// KV is a binder that wires the repo to a key-value store
	KV struct{}
	// queries implements the Repo interface
	queries struct{ kv repokit.KV }
)

// NewKV returns a binder for the dictionary repo
func NewKV() repokit.Binder[Repo] { return KV{} }

// Bind wires a key-value store to the repo
func (KV) Bind(kv repokit.KV) Repo { return &queries{kv: kv} }

func (r *queries) Active(ctx context.Context, sub string) ([]repokit.Member, error) {
	return r.kv.ZRangeByRank(ctx, store.KeyWordsAll(sub), 0, -1, false)
}

func (r *queries) ActiveScore(ctx context.Context, sub, word string) (float64, bool, error) {
	return r.kv.ZScore(ctx, store.KeyWordsAll(sub), word)
}

func (r *queries) ActiveCount(ctx context.Context, sub string) (int64, error) {
	return r.kv.ZCard(ctx, store.KeyWordsAll(sub))
}

func (r *queries) AddActive(ctx context.Context, sub string, words ...repokit.Member) error {
	if len(words) == 0 {
		return nil
	}
	return r.kv.ZAdd(ctx, store.KeyWordsAll(sub), words...)
}

func (r *queries) RemoveActive(ctx context.Context, sub string, words ...string) error {
	if len(words) == 0 {
		return nil
	}
	if err := r.kv.ZRem(ctx, store.KeyWordsAll(sub), words...); err != nil {
		return err
	}
	if err := r.kv.ZRem(ctx, store.KeyWordsUncertainty(sub), words...); err != nil {
		return err
	}
	return r.kv.HDel(ctx, store.KeyWordsLastServed(sub), words...)
}

func (r *queries) ReplaceActive(ctx context.Context, sub string, words []repokit.Member) error {
	if err := r.kv.Del(ctx, store.KeyWordsAll(sub)); err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	return r.kv.ZAdd(ctx, store.KeyWordsAll(sub), words...)
}

func (r *queries) SetUncertainty(ctx context.Context, sub string, words ...repokit.Member) error {
	if len(words) == 0 {
		return nil
	}
	return r.kv.ZAdd(ctx, store.KeyWordsUncertainty(sub), words...)
}

func (r *queries) Ban(ctx context.Context, sub, word string) error {
	return r.kv.ZAdd(ctx, store.KeyWordsBanned(sub), repokit.Member{Member: word, Score: 0})
}

func (r *queries) Unban(ctx context.Context, sub, word string) error {
	return r.kv.ZRem(ctx, store.KeyWordsBanned(sub), word)
}

func (r *queries) IsBanned(ctx context.Context, sub, word string) (bool, error) {
	_, ok, err := r.kv.ZScore(ctx, store.KeyWordsBanned(sub), word)
	return ok, err
}

func (r *queries) RegisterCommunity(ctx context.Context, sub string) error {
	return r.kv.ZAdd(ctx, store.KeyCommunities(), repokit.Member{Member: sub, Score: 0})
}

func (r *queries) CommunityExists(ctx context.Context, sub string) (bool, error) {
	_, ok, err := r.kv.ZScore(ctx, store.KeyCommunities(), sub)
	return ok, err
}

func (r *queries) SetBacking(ctx context.Context, sub, word, commentID string) error {
	if err := r.kv.HSet(ctx, store.KeyWordsBacking(sub), map[string]string{word: commentID}); err != nil {
		return err
	}
	return r.kv.HSet(ctx, store.KeyWordsBackingByComment(sub), map[string]string{commentID: word})
}

func (r *queries) BackingWord(ctx context.Context, sub, commentID string) (string, bool, error) {
	return r.kv.HGet(ctx, store.KeyWordsBackingByComment(sub), commentID)
}

func (r *queries) RemoveBacking(ctx context.Context, sub, word, commentID string) error {
	if word != "" {
		if err := r.kv.HDel(ctx, store.KeyWordsBacking(sub), word); err != nil {
			return err
		}
	}
	if commentID == "" {
		return nil
	}
	return r.kv.HDel(ctx, store.KeyWordsBackingByComment(sub), commentID)
}
