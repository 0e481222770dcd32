// Package repo provides KV persistence for scheduled jobs.
// Pending jobs live in a due-time zset; payloads live in per-job hashes
package repo

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	"inkarena/internal/services/scheduler/domain"
)

// Repo is the minimal persistence surface for the scheduler
type Repo interface {
	Enqueue(ctx context.Context, job domain.Job) error
	// Due returns up to limit jobs whose run time is at or before now
	Due(ctx context.Context, now time.Time, limit int) ([]domain.Job, error)
	// Claim takes the delivery lease for one job
	Claim(ctx context.Context, jobID string, ttl time.Duration) (bool, error)
	Remove(ctx context.Context, jobID string) error
	Pending(ctx context.Context) (int64, error)
}

type (
	// KV is a binder that wires the repo to a key-value store
	KV struct{}
	// queries implements the Repo interface
	queries struct{ kv repokit.KV }
)

// NewKV returns a binder for the scheduler repo
func NewKV() repokit.Binder[Repo] { return KV{} }

// Bind wires a key-value store to the repo
func (KV) Bind(kv repokit.KV) Repo { return &queries{kv: kv} }

func (r *queries) Enqueue(ctx context.Context, job domain.Job) error {
	raw, err := json.Marshal(job.Data)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode job data")
	}
	fields := map[string]string{
		"name":   job.Name,
		"data":   string(raw),
		"run_at": strconv.FormatInt(job.RunAt.Unix(), 10),
	}
	if err := r.kv.HSet(ctx, store.KeyJob(job.ID), fields); err != nil {
		return err
	}
	return r.kv.ZAdd(ctx, store.KeyJobsScheduled(), store.Member{
		Member: job.ID,
		Score:  float64(job.RunAt.Unix()),
	})
}

func (r *queries) Due(ctx context.Context, now time.Time, limit int) ([]domain.Job, error) {
	ids, err := r.kv.ZRangeByScore(ctx, store.KeyJobsScheduled(), math.Inf(-1), float64(now.Unix()), false)
	if err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]domain.Job, 0, len(ids))
	for _, m := range ids {
		fields, err := r.kv.HGetAll(ctx, store.KeyJob(m.Member))
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			// payload vanished; drop the dangling index entry
			_ = r.kv.ZRem(ctx, store.KeyJobsScheduled(), m.Member)
			continue
		}
		job := domain.Job{ID: m.Member, Name: fields["name"], RunAt: time.Unix(int64(m.Score), 0).UTC()}
		if raw := fields["data"]; raw != "" {
			_ = json.Unmarshal([]byte(raw), &job.Data)
		}
		out = append(out, job)
	}
	return out, nil
}

func (r *queries) Claim(ctx context.Context, jobID string, ttl time.Duration) (bool, error) {
	return r.kv.SetNX(ctx, store.KeyJobLock(jobID), "1", ttl)
}

func (r *queries) Remove(ctx context.Context, jobID string) error {
	if err := r.kv.ZRem(ctx, store.KeyJobsScheduled(), jobID); err != nil {
		return err
	}
	return r.kv.Del(ctx, store.KeyJob(jobID), store.KeyJobLock(jobID))
}

func (r *queries) Pending(ctx context.Context) (int64, error) {
	return r.kv.ZCard(ctx, store.KeyJobsScheduled())
}
