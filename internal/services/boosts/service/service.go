// Package service contains consumable boost workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/logger"
	"inkarena/internal/services/boosts/domain"
	"inkarena/internal/services/boosts/repo"
	hostdom "inkarena/internal/services/host/domain"
)

// Service defines the boosts service contract
type Service interface {
	domain.ServicePort
}

// hashBuffer keeps the activation hash readable a little past expiry so
// late effect reads resolve instead of dangling
const hashBuffer = time.Hour

// Svc implements the boosts service
type Svc struct {
	Repo     repo.Repo
	realtime hostdom.RealtimePort
	log      logger.Logger

	// Now is swappable for tests
	Now func() time.Time
}

// New constructs a boosts service; realtime may be nil
func New(kv repokit.KV, binder repokit.Binder[repo.Repo], realtime hostdom.RealtimePort) *Svc {
	if kv == nil {
		panic("boosts.Service requires a non nil KV")
	}
	if binder == nil {
		panic("boosts.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:     binder.Bind(kv),
		realtime: realtime,
		log:      *logger.Named("boosts"),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// Grant adds count items to the user's inventory
func (s *Svc) Grant(ctx context.Context, userID, item string, count int64) error {
	if userID == "" {
		return perr.InvalidArgf("user id required")
	}
	if _, ok := domain.Catalog[item]; !ok {
		return perr.InvalidArgf("unknown item %q", item)
	}
	if count <= 0 {
		count = 1
	}
	_, err := s.Repo.AdjustInventory(ctx, userID, item, count)
	return err
}

// Inventory returns the user's positive item counts
func (s *Svc) Inventory(ctx context.Context, userID string) (map[string]int64, error) {
	if userID == "" {
		return nil, perr.InvalidArgf("user id required")
	}
	return s.Repo.Inventory(ctx, userID)
}

// Activate consumes one item and starts its effect. The decrement floors
// at zero: a failed decrement is compensated before reporting the error
func (s *Svc) Activate(ctx context.Context, userID, item string) (domain.Activation, error) {
	if userID == "" {
		return domain.Activation{}, perr.InvalidArgf("user id required")
	}
	it, ok := domain.Catalog[item]
	if !ok {
		return domain.Activation{}, perr.InvalidArgf("unknown item %q", item)
	}

	left, err := s.Repo.AdjustInventory(ctx, userID, item, -1)
	if err != nil {
		return domain.Activation{}, err
	}
	if left < 0 {
		// went below zero, give the phantom item back
		if _, rerr := s.Repo.AdjustInventory(ctx, userID, item, 1); rerr != nil {
			s.log.Error().Err(rerr).Str("user_id", userID).Str("item", item).Msg("inventory compensation failed")
		}
		return domain.Activation{}, perr.InvalidArgf("no %q in inventory", item)
	}

	now := s.Now()
	a := domain.Activation{
		ID:         uuid.NewString(),
		UserID:     userID,
		Item:       it.ID,
		Kind:       it.Kind,
		Multiplier: it.Multiplier,
		ExtraTime:  it.ExtraTime,
		ExpiresAt:  now.Add(it.Duration),
	}
	if err := s.Repo.SaveActivation(ctx, a, it.Duration+hashBuffer); err != nil {
		return domain.Activation{}, err
	}
	s.notify(ctx, userID)
	return a, nil
}

// ActiveEffects returns live activations and the aggregate effect view.
// Expired entries are pruned lazily on the way through
func (s *Svc) ActiveEffects(ctx context.Context, userID string) (domain.Effects, error) {
	if userID == "" {
		return domain.Effects{}, perr.InvalidArgf("user id required")
	}
	now := s.Now()
	if err := s.Repo.PruneExpired(ctx, userID, now); err != nil {
		return domain.Effects{}, err
	}
	ids, err := s.Repo.LiveActivationIDs(ctx, userID, now)
	if err != nil {
		return domain.Effects{}, err
	}

	out := domain.Effects{ScoreMultiplier: 1, Active: []domain.Activation{}}
	for _, id := range ids {
		a, ok, err := s.Repo.LoadActivation(ctx, id)
		if err != nil {
			return domain.Effects{}, err
		}
		if !ok {
			// hash outlived by its index entry, drop it
			_ = s.Repo.RemoveActivation(ctx, userID, id)
			continue
		}
		out.Active = append(out.Active, a)
		switch a.Kind {
		case domain.KindScoreMultiplier:
			if a.Multiplier > out.ScoreMultiplier {
				out.ScoreMultiplier = a.Multiplier
			}
		case domain.KindExtraTime:
			out.ExtraTime += a.ExtraTime
		}
	}
	return out, nil
}

// notify tells the user's client that effects changed; failures only log
func (s *Svc) notify(ctx context.Context, userID string) {
	if s.realtime == nil {
		return
	}
	if err := s.realtime.Send(ctx, "user:"+userID, map[string]any{"type": "effects_updated"}); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("realtime notify failed")
	}
}
