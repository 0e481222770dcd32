// Package repo provides KV persistence for slates and funnel counters
package repo

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	"inkarena/internal/services/slate/domain"
)

// funnel stages tracked per word
const (
	StageServed = "served"
	StagePicked = "picked"
	StagePosted = "posted"
)

// counterTTL keeps funnel counters alive for 30 days past the last touch
const counterTTL = 30 * 24 * time.Hour

// Field composes the hash field for one word and stage.
// "|" is the separator because words can contain spaces but never pipes
func Field(word, stage string) string { return word + "|" + stage }

// Repo is the minimal persistence surface for the slate engine
type Repo interface {
	ActiveWords(ctx context.Context, sub string) ([]repokit.Member, error)
	Uncertainty(ctx context.Context, sub string) (map[string]float64, error)
	LastServed(ctx context.Context, sub string) (map[string]int64, error)
	TouchLastServed(ctx context.Context, sub string, ts int64, words []string) error

	SaveSlate(ctx context.Context, s domain.Slate, ttl time.Duration) error
	LoadSlate(ctx context.Context, id string) (domain.Slate, bool, error)

	// BumpFunnel increments the hourly and lifetime counters for one word
	// and refreshes both keys' TTLs
	BumpFunnel(ctx context.Context, sub, word, stage string, n int64) error
	Hourly(ctx context.Context, sub string) (map[string]string, error)
	ResetHourly(ctx context.Context, sub string) error

	WriteScores(ctx context.Context, sub string, scores []repokit.Member) error
	WriteUncertainty(ctx context.Context, sub string, values []repokit.Member) error

	Config(ctx context.Context) (map[string]string, error)
	SetConfig(ctx context.Context, fields map[string]string) error

	Communities(ctx context.Context) ([]string, error)
}

type (
	// KV is a binder that wires the repo to a key-value store
	KV struct{}
	// queries implements the Repo interface
	queries struct{ kv repokit.KV }
)

// NewKV returns a binder for the slate repo
func NewKV() repokit.Binder[Repo] { return KV{} }

// Bind wires a key-value store to the repo
func (KV) Bind(kv repokit.KV) Repo { return &queries{kv: kv} }

func (r *queries) ActiveWords(ctx context.Context, sub string) ([]repokit.Member, error) {
	return r.kv.ZRangeByRank(ctx, store.KeyWordsAll(sub), 0, -1, false)
}

func (r *queries) Uncertainty(ctx context.Context, sub string) (map[string]float64, error) {
	ms, err := r.kv.ZRangeByRank(ctx, store.KeyWordsUncertainty(sub), 0, -1, false)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Member] = m.Score
	}
	return out, nil
}

func (r *queries) LastServed(ctx context.Context, sub string) (map[string]int64, error) {
	raw, err := r.kv.HGetAll(ctx, store.KeyWordsLastServed(sub))
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for w, v := range raw {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue // unreadable timestamp, treat as never served
		}
		out[w] = ts
	}
	return out, nil
}

func (r *queries) TouchLastServed(ctx context.Context, sub string, ts int64, words []string) error {
	if len(words) == 0 {
		return nil
	}
	fields := make(map[string]string, len(words))
	v := strconv.FormatInt(ts, 10)
	for _, w := range words {
		fields[w] = v
	}
	return r.kv.HSet(ctx, store.KeyWordsLastServed(sub), fields)
}

func (r *queries) SaveSlate(ctx context.Context, s domain.Slate, ttl time.Duration) error {
	raw, err := json.Marshal(s.Words)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode slate words")
	}
	key := store.KeySlate(s.ID)
	fields := map[string]string{
		"community":  s.Community,
		"words":      string(raw),
		"created_at": strconv.FormatInt(s.CreatedAt.Unix(), 10),
	}
	if err := r.kv.HSet(ctx, key, fields); err != nil {
		return err
	}
	return r.kv.Expire(ctx, key, ttl)
}

func (r *queries) LoadSlate(ctx context.Context, id string) (domain.Slate, bool, error) {
	fields, err := r.kv.HGetAll(ctx, store.KeySlate(id))
	if err != nil {
		return domain.Slate{}, false, err
	}
	if len(fields) == 0 {
		return domain.Slate{}, false, nil
	}
	s := domain.Slate{ID: id, Community: fields["community"]}
	if raw := fields["words"]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &s.Words)
	}
	if ts, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		s.CreatedAt = time.Unix(ts, 0).UTC()
	}
	return s, true, nil
}

func (r *queries) BumpFunnel(ctx context.Context, sub, word, stage string, n int64) error {
	hourly := store.KeyWordsHourly(sub)
	total := store.KeyWordsTotal(sub)
	if _, err := r.kv.HIncrBy(ctx, hourly, Field(word, stage), n); err != nil {
		return err
	}
	if _, err := r.kv.HIncrBy(ctx, total, Field(word, stage), n); err != nil {
		return err
	}
	if err := r.kv.Expire(ctx, hourly, counterTTL); err != nil {
		return err
	}
	return r.kv.Expire(ctx, total, counterTTL)
}

func (r *queries) Hourly(ctx context.Context, sub string) (map[string]string, error) {
	return r.kv.HGetAll(ctx, store.KeyWordsHourly(sub))
}

func (r *queries) ResetHourly(ctx context.Context, sub string) error {
	return r.kv.Del(ctx, store.KeyWordsHourly(sub))
}

func (r *queries) WriteScores(ctx context.Context, sub string, scores []repokit.Member) error {
	if len(scores) == 0 {
		return nil
	}
	return r.kv.ZAdd(ctx, store.KeyWordsAll(sub), scores...)
}

func (r *queries) WriteUncertainty(ctx context.Context, sub string, values []repokit.Member) error {
	if len(values) == 0 {
		return nil
	}
	return r.kv.ZAdd(ctx, store.KeyWordsUncertainty(sub), values...)
}

func (r *queries) Config(ctx context.Context) (map[string]string, error) {
	return r.kv.HGetAll(ctx, store.KeySlateConfig())
}

func (r *queries) SetConfig(ctx context.Context, fields map[string]string) error {
	return r.kv.HSet(ctx, store.KeySlateConfig(), fields)
}

func (r *queries) Communities(ctx context.Context) ([]string, error) {
	ms, err := r.kv.ZRangeByRank(ctx, store.KeyCommunities(), 0, -1, false)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Member)
	}
	return out, nil
}
