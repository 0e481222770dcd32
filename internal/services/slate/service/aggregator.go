package service

import (
	"context"
	"strconv"
	"time"

	"inkarena/internal/core/bandit"
	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	scheddom "inkarena/internal/services/scheduler/domain"
	"inkarena/internal/services/slate/repo"
)

// aggregator pacing: one full pass per hour, continuations cut before the
// job lease runs out
const (
	aggregatorInterval = time.Hour
	aggregatorBudget   = 50 * time.Second
	defaultBatchSize   = 25
)

// UpdateScores runs one score-update pass for a community.
// The pass is guarded by the per-community aggregator lock; a held lock
// means another instance is already on it and the call reports Conflict
func (s *Svc) UpdateScores(ctx context.Context, community string) error {
	if community == "" {
		return perr.InvalidArgf("community required")
	}
	acquired, err := s.locker.Acquire(ctx, store.KeySlateAggregatorLock(community), aggregatorLockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return perr.Conflictf("score update already running for %s", community)
	}
	defer func() { _ = s.locker.Release(ctx, store.KeySlateAggregatorLock(community)) }()

	return s.updateScoresLocked(ctx, community)
}

func (s *Svc) updateScoresLocked(ctx context.Context, community string) error {
	cfg, err := s.Config(ctx)
	if err != nil {
		return err
	}
	words, err := s.Repo.ActiveWords(ctx, community)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	uncertainty, err := s.Repo.Uncertainty(ctx, community)
	if err != nil {
		return err
	}
	hourly, err := s.Repo.Hourly(ctx, community)
	if err != nil {
		return err
	}

	served := func(w string) int64 { return readCount(hourly, repo.Field(w, repo.StageServed)) }
	picked := func(w string) int64 { return readCount(hourly, repo.Field(w, repo.StagePicked)) }
	posted := func(w string) int64 { return readCount(hourly, repo.Field(w, repo.StagePosted)) }

	// rate vectors over the words that actually got impressions this hour
	var observed []string
	var pickRates, postRates []float64
	for _, m := range words {
		n := served(m.Member)
		if n <= 0 {
			continue
		}
		observed = append(observed, m.Member)
		pickRates = append(pickRates, float64(picked(m.Member))/float64(n))
		postRates = append(postRates, float64(posted(m.Member))/float64(n))
	}
	zPick := bandit.ZScores(pickRates, cfg.ZScoreClamp)
	zPost := bandit.ZScores(postRates, cfg.ZScoreClamp)
	fresh := make(map[string]float64, len(observed))
	for i, w := range observed {
		fresh[w] = cfg.WeightPickRate*zPick[i] + cfg.WeightPostRate*zPost[i]
	}

	scores := make([]repokit.Member, 0, len(words))
	uncs := make([]repokit.Member, 0, len(words))
	for _, m := range words {
		score, ok := fresh[m.Member]
		if !ok {
			// unobserved words carry their previous score into the decay
			score = m.Score
		}
		// every write drifts toward zero over the pass interval
		score = bandit.Decay(score, cfg.ScoreDecayRate, aggregatorInterval.Hours())
		scores = append(scores, repokit.Member{Member: m.Member, Score: score})

		u := uncertainty[m.Member]
		u = bandit.DampUncertainty(u, served(m.Member), cfg.UncertaintyDamping)
		u = bandit.GrowUncertainty(u, cfg.UncertaintyGrowth)
		uncs = append(uncs, repokit.Member{Member: m.Member, Score: u})
	}

	if err := s.Repo.WriteScores(ctx, community, scores); err != nil {
		return err
	}
	if err := s.Repo.WriteUncertainty(ctx, community, uncs); err != nil {
		return err
	}
	return s.Repo.ResetHourly(ctx, community)
}

// AggregatorHandler walks every community in batches and refreshes scores.
// When the time budget runs out mid-walk it enqueues a continuation; when
// started as the initial job it chains the next hourly run first
func (s *Svc) AggregatorHandler(sched scheddom.SchedulerPort) scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		batch := job.Int("batchSize", defaultBatchSize)
		if batch <= 0 {
			batch = defaultBatchSize
		}
		offset := job.Int("offset", 0)

		if job.Bool("isInitialJob", true) {
			if _, err := sched.RunJob(ctx, scheddom.Job{
				Name:  scheddom.JobSlateAggregator,
				Data:  map[string]any{"batchSize": batch, "isInitialJob": true},
				RunAt: s.Now().Add(aggregatorInterval),
			}); err != nil {
				return err
			}
		}

		communities, err := s.Repo.Communities(ctx)
		if err != nil {
			return err
		}
		start := s.Now()
		for i := offset; i < len(communities); i++ {
			if i-offset >= batch || s.Now().Sub(start) > aggregatorBudget {
				_, err := sched.RunJob(ctx, scheddom.Job{
					Name: scheddom.JobSlateAggregator,
					Data: map[string]any{"batchSize": batch, "isInitialJob": false, "offset": i},
				})
				return err
			}
			if err := s.UpdateScores(ctx, communities[i]); err != nil {
				if perr.IsCode(err, perr.ErrorCodeConflict) {
					continue // another worker owns this community right now
				}
				s.log.Error().Err(err).Str("community", communities[i]).Msg("score update failed")
			}
		}
		return nil
	}
}

func readCount(fields map[string]string, key string) int64 {
	n, err := strconv.ParseInt(fields[key], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
