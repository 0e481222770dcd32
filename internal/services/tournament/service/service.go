// Package service contains tournament workflows: the hopper scheduler,
// entry submission, Elo voting, and snapshot payouts
package service

import (
	"context"
	"math/rand"
	"time"

	"inkarena/internal/core/words"
	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/logger"
	"inkarena/internal/platform/store"
	hostdom "inkarena/internal/services/host/domain"
	progdom "inkarena/internal/services/progression/domain"
	scheddom "inkarena/internal/services/scheduler/domain"
	"inkarena/internal/services/tournament/domain"
	"inkarena/internal/services/tournament/repo"
)

// Service defines the tournament service contract
type Service interface {
	domain.ServicePort
}

const (
	// tickLockTTL bounds one hopper tick
	tickLockTTL = 30 * time.Second

	// payoutLockTTL bounds one snapshot payout
	payoutLockTTL = 60 * time.Second

	// eloLockTTL serializes rating exchanges; voters tolerate expiry
	eloLockTTL = 2 * time.Second
)

// Collaborators are the cross-module ports the tournament consumes
type Collaborators struct {
	Host      hostdom.Ports
	Progress  progdom.ServicePort
	Scheduler scheddom.SchedulerPort
}

// Svc implements the tournament service
type Svc struct {
	Repo    repo.Repo
	Cfg     domain.Config
	collab  Collaborators
	locker  repokit.Locker
	limiter repokit.Limiter
	log     logger.Logger

	// Now and Rand are swappable for tests
	Now  func() time.Time
	Rand *rand.Rand
}

// New constructs a tournament service
func New(kv repokit.KV, binder repokit.Binder[repo.Repo], cfg domain.Config, collab Collaborators) *Svc {
	if kv == nil {
		panic("tournament.Service requires a non nil KV")
	}
	if binder == nil {
		panic("tournament.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:    binder.Bind(kv),
		Cfg:     cfg,
		collab:  collab,
		locker:  repokit.NewLocker(kv),
		limiter: repokit.NewLimiter(kv),
		log:     *logger.Named("tournament"),
		Now:     func() time.Time { return time.Now().UTC() },
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddPrompt queues a word for a future tournament. The hopper is FIFO by
// first insertion; re-adding a queued word keeps its place
func (s *Svc) AddPrompt(ctx context.Context, community, word string) error {
	if community == "" {
		return perr.InvalidArgf("community required")
	}
	w, err := words.Normalize(word)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid word")
	}
	return s.Repo.PushHopper(ctx, community, w, s.Now())
}

// SetSchedulerEnabled toggles the hopper scheduler for a community
func (s *Svc) SetSchedulerEnabled(ctx context.Context, community string, enabled bool) error {
	if community == "" {
		return perr.InvalidArgf("community required")
	}
	return s.Repo.SetSchedulerEnabled(ctx, community, enabled)
}

// Tick starts the next tournament from the hopper. Disabled schedulers
// and empty hoppers report skipped; a held tick lock reports busy
func (s *Svc) Tick(ctx context.Context, community string) (domain.TickResult, error) {
	if community == "" {
		return domain.TickResult{}, perr.InvalidArgf("community required")
	}
	enabled, err := s.Repo.SchedulerEnabled(ctx, community)
	if err != nil {
		return domain.TickResult{}, err
	}
	if !enabled {
		return domain.TickResult{Status: "skipped"}, nil
	}

	lockKey := store.KeyTournamentSchedulerLock(community)
	acquired, err := s.locker.Acquire(ctx, lockKey, tickLockTTL)
	if err != nil {
		return domain.TickResult{}, err
	}
	if !acquired {
		return domain.TickResult{Status: "busy"}, nil
	}
	defer func() { _ = s.locker.Release(ctx, lockKey) }()

	word, ok, err := s.Repo.PeekHopper(ctx, community)
	if err != nil {
		return domain.TickResult{}, err
	}
	if !ok {
		return domain.TickResult{Status: "skipped"}, nil
	}

	now := s.Now()
	post, err := s.collab.Host.Posts.Create(ctx, community, "Tournament: "+word, map[string]string{
		"type": "tournament",
		"word": word,
	})
	if err != nil {
		return domain.TickResult{}, err
	}

	t := domain.Tournament{
		PostID:    post.ID,
		Community: community,
		Word:      word,
		CreatedAt: now,
	}
	if err := s.Repo.SaveTournament(ctx, t); err != nil {
		return domain.TickResult{}, err
	}
	if err := s.Repo.PopHopper(ctx, community, word); err != nil {
		return domain.TickResult{}, err
	}

	if s.collab.Scheduler != nil {
		if _, err := s.collab.Scheduler.RunJob(ctx, scheddom.Job{
			Name: scheddom.JobCreateTournamentPostComment,
			Data: map[string]any{"postId": post.ID},
		}); err != nil {
			s.log.Error().Err(err).Str("post_id", post.ID).Msg("pinned comment job enqueue failed")
		}
		for day := 1; day <= s.Cfg.SnapshotCount; day++ {
			if _, err := s.collab.Scheduler.RunJob(ctx, scheddom.Job{
				Name:  scheddom.JobTournamentPayout,
				Data:  map[string]any{"postId": post.ID, "dayIndex": day},
				RunAt: now.Add(time.Duration(day) * s.Cfg.SnapshotWindow),
			}); err != nil {
				s.log.Error().Err(err).Str("post_id", post.ID).Int("day", day).Msg("payout job enqueue failed")
			}
		}
	}

	s.log.Info().Str("community", community).Str("post_id", post.ID).Str("word", word).Msg("tournament started")
	return domain.TickResult{Status: "started", PostID: post.ID, Word: word}, nil
}

// GetTournament loads one tournament by post id
func (s *Svc) GetTournament(ctx context.Context, postID string) (domain.Tournament, error) {
	if postID == "" {
		return domain.Tournament{}, perr.InvalidArgf("post id required")
	}
	t, ok, err := s.Repo.LoadTournament(ctx, postID)
	if err != nil {
		return domain.Tournament{}, err
	}
	if !ok {
		return domain.Tournament{}, perr.NotFoundf("tournament %s not found", postID)
	}
	return t, nil
}

// ListTournaments returns the most recent tournaments, newest first
func (s *Svc) ListTournaments(ctx context.Context, limit int) ([]domain.Tournament, error) {
	if limit <= 0 {
		limit = 10
	}
	ids, err := s.Repo.Recent(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tournament, 0, len(ids))
	for _, id := range ids {
		t, ok, err := s.Repo.LoadTournament(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
