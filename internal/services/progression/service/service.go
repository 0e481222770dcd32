// Package service contains progression workflows
package service

import (
	"context"
	"math"

	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/logger"
	boostsdom "inkarena/internal/services/boosts/domain"
	identdom "inkarena/internal/services/ident/domain"
	"inkarena/internal/services/progression/domain"
	"inkarena/internal/services/progression/repo"
	scheddom "inkarena/internal/services/scheduler/domain"
)

// Service defines the progression service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the progression service
type Svc struct {
	Repo   repo.Repo
	boosts boostsdom.ServicePort
	ident  identdom.ServicePort
	sched  scheddom.SchedulerPort
	log    logger.Logger
}

// New constructs a progression service.
// boosts, ident and sched are optional collaborators; absent ones
// degrade to multiplier 1, id-only leaderboards, and no level-up jobs
func New(
	kv repokit.KV,
	binder repokit.Binder[repo.Repo],
	boosts boostsdom.ServicePort,
	ident identdom.ServicePort,
	sched scheddom.SchedulerPort,
) *Svc {
	if kv == nil {
		panic("progression.Service requires a non nil KV")
	}
	if binder == nil {
		panic("progression.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(kv),
		boosts: boosts,
		ident:  ident,
		sched:  sched,
		log:    *logger.Named("progression"),
	}
}

// GetScore returns the user's score and level; unknown users read as zero
func (s *Svc) GetScore(ctx context.Context, userID string) (domain.Progress, error) {
	if userID == "" {
		return domain.Progress{}, perr.InvalidArgf("user id required")
	}
	raw, _, err := s.Repo.Score(ctx, userID)
	if err != nil {
		return domain.Progress{}, err
	}
	return progressFor(userID, int64(raw)), nil
}

// SetScore overwrites the user's score; admin surface, no multiplier
func (s *Svc) SetScore(ctx context.Context, userID string, score int64) error {
	if userID == "" {
		return perr.InvalidArgf("user id required")
	}
	if score < 0 {
		return perr.InvalidArgf("score must be non-negative")
	}
	return s.Repo.SetScore(ctx, userID, float64(score))
}

// IncrementScore credits points through the user's best active multiplier.
// Crossing a level boundary enqueues the level-up and flair jobs
func (s *Svc) IncrementScore(ctx context.Context, in domain.AwardInput) (domain.Progress, error) {
	if in.UserID == "" {
		return domain.Progress{}, perr.InvalidArgf("user id required")
	}
	if in.Amount <= 0 {
		return domain.Progress{}, perr.InvalidArgf("amount must be positive")
	}

	mult := 1.0
	if s.boosts != nil {
		eff, err := s.boosts.ActiveEffects(ctx, in.UserID)
		if err != nil {
			// a broken boost read must not block scoring
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("boost lookup failed, multiplier 1")
		} else if eff.ScoreMultiplier > 1 {
			mult = eff.ScoreMultiplier
		}
	}
	delta := math.Round(float64(in.Amount) * mult)

	after, err := s.Repo.IncrScore(ctx, in.UserID, delta)
	if err != nil {
		return domain.Progress{}, err
	}
	newScore := int64(after)
	before := newScore - int64(delta)

	if lvl := domain.LevelFor(newScore); lvl.Rank > domain.LevelFor(before).Rank {
		s.enqueueLevelUp(ctx, in.Community, in.UserID, lvl)
	}
	return progressFor(in.UserID, newScore), nil
}

// Leaderboard returns the top standings, usernames resolved through the
// cached identity service when available
func (s *Svc) Leaderboard(ctx context.Context, limit, offset int) ([]domain.Standing, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	top, err := s.Repo.Top(ctx, int64(offset), int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Standing, 0, len(top))
	for i, m := range top {
		row := domain.Standing{
			Rank:   offset + i + 1,
			UserID: m.Member,
			Score:  int64(m.Score),
			Level:  domain.LevelFor(int64(m.Score)),
		}
		if s.ident != nil {
			if u, err := s.ident.ByID(ctx, m.Member); err == nil {
				row.Username = u.Username
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Svc) enqueueLevelUp(ctx context.Context, community, userID string, lvl domain.Level) {
	if s.sched == nil {
		return
	}
	if _, err := s.sched.RunJob(ctx, scheddom.Job{
		Name: scheddom.JobUserLevelUp,
		Data: map[string]any{"userId": userID, "level": lvl.Rank, "community": community},
	}); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("level-up job enqueue failed")
	}
	if _, err := s.sched.RunJob(ctx, scheddom.Job{
		Name: scheddom.JobSetUserFlair,
		Data: map[string]any{"userId": userID, "community": community, "text": lvl.Name},
	}); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("flair job enqueue failed")
	}
}

func progressFor(userID string, score int64) domain.Progress {
	lvl := domain.LevelFor(score)
	p := domain.Progress{UserID: userID, Score: score, Level: lvl}
	for _, l := range domain.Levels {
		if l.Min > score {
			p.NextMin = l.Min
			break
		}
	}
	return p
}
