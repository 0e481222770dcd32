package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	progdom "inkarena/internal/services/progression/domain"
	"inkarena/internal/services/tournament/domain"
)

// payoutFetchWorkers bounds the entry metadata fan-out
const payoutFetchWorkers = 8

// Payout runs one snapshot payout. Exactly-once is enforced by the
// payout ledger, which is checked and written while the payout lock is
// held: a crashed worker's lock lapses and the retry finds the ledger
// still empty, a finished worker's retry finds it written
func (s *Svc) Payout(ctx context.Context, in domain.PayoutInput) (domain.PayoutResult, error) {
	if in.PostID == "" || in.DayIndex < 1 {
		return domain.PayoutResult{}, perr.InvalidArgf("post id and positive day index required")
	}

	t, err := s.GetTournament(ctx, in.PostID)
	if err != nil {
		return domain.PayoutResult{}, err
	}

	// cheap pre-check outside the lock
	done, err := s.Repo.PayoutDone(ctx, in.PostID, in.DayIndex)
	if err != nil {
		return domain.PayoutResult{}, err
	}
	if done {
		return domain.PayoutResult{Status: "skipped"}, nil
	}

	lockKey := store.KeyPayoutLock(in.PostID, in.DayIndex)
	acquired, err := s.locker.Acquire(ctx, lockKey, payoutLockTTL)
	if err != nil {
		return domain.PayoutResult{}, err
	}
	if !acquired {
		return domain.PayoutResult{Status: "busy"}, nil
	}
	defer func() { _ = s.locker.Release(ctx, lockKey) }()

	// authoritative re-check inside the lock
	done, err = s.Repo.PayoutDone(ctx, in.PostID, in.DayIndex)
	if err != nil {
		return domain.PayoutResult{}, err
	}
	if done {
		return domain.PayoutResult{Status: "skipped"}, nil
	}

	standings, err := s.Repo.TopEntries(ctx, in.PostID, -1)
	if err != nil {
		return domain.PayoutResult{}, err
	}
	n := len(standings)
	if n == 0 {
		if err := s.Repo.MarkPayoutDone(ctx, in.PostID, in.DayIndex, s.Now()); err != nil {
			return domain.PayoutResult{}, err
		}
		return domain.PayoutResult{Status: "paid", Paid: 0, Cutoff: 0, Entries: 0}, nil
	}

	cutoff := n * s.Cfg.TopPercent / 100
	if cutoff < 1 {
		cutoff = 1
	}
	winners := standings[:cutoff]

	// resolve entry owners with a bounded fan-out
	owners := make([]string, len(winners))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(payoutFetchWorkers)
	for i, m := range winners {
		i, m := i, m
		g.Go(func() error {
			e, ok, err := s.Repo.LoadEntry(gctx, m.Member)
			if err != nil {
				return err
			}
			if !ok {
				return nil // removed between snapshot and fetch
			}
			mu.Lock()
			owners[i] = e.UserID
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.PayoutResult{}, err
	}

	paid := 0
	for rank, userID := range owners {
		if userID == "" {
			continue
		}
		amount := s.Cfg.TopReward
		if rank < len(s.Cfg.Ladder) {
			amount += s.Cfg.Ladder[rank]
		}
		if s.collab.Progress != nil && amount > 0 {
			if _, err := s.collab.Progress.IncrementScore(ctx, progdom.AwardInput{
				Community: t.Community,
				UserID:    userID,
				Amount:    amount,
			}); err != nil {
				// not retried: the ledger marks the snapshot done either
				// way, so log loudly
				s.log.Error().Err(err).Str("post_id", in.PostID).Str("user_id", userID).Msg("payout award failed")
				continue
			}
		}
		paid++
	}

	if err := s.Repo.MarkPayoutDone(ctx, in.PostID, in.DayIndex, s.Now()); err != nil {
		return domain.PayoutResult{}, err
	}

	// summary comment is best effort
	if s.collab.Host.Comments != nil {
		text := fmt.Sprintf("Day %d results for %q: top %d of %d entries rewarded.",
			in.DayIndex, t.Word, cutoff, n)
		if _, err := s.collab.Host.Comments.Submit(ctx, in.PostID, text); err != nil {
			s.log.Warn().Err(err).Str("post_id", in.PostID).Msg("payout summary comment failed")
		}
	}

	return domain.PayoutResult{Status: "paid", Paid: paid, Cutoff: cutoff, Entries: n}, nil
}
