package service

import (
	"context"

	"inkarena/internal/core/elo"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	progdom "inkarena/internal/services/progression/domain"
	"inkarena/internal/services/tournament/domain"
)

// Vote applies one zero-sum Elo exchange between two entries.
// The rating write runs under the tournament's short Elo lock with a
// re-read, so concurrent votes never double-apply a stale rating. When
// the lock cannot be taken before its 2s lease would matter, the
// pre-read ratings are used rather than dropping the vote
func (s *Svc) Vote(ctx context.Context, in domain.VoteInput) (domain.VoteResult, error) {
	if in.PostID == "" || in.VoterID == "" || in.Winner == "" || in.Loser == "" {
		return domain.VoteResult{}, perr.InvalidArgf("post, voter, winner and loser required")
	}
	if in.Winner == in.Loser {
		return domain.VoteResult{}, perr.InvalidArgf("an entry cannot beat itself")
	}

	limited, err := s.limiter.Limited(ctx, store.KeyRateVote(in.VoterID), s.Cfg.VoteLimit, s.Cfg.VoteWindow)
	if err != nil {
		return domain.VoteResult{}, err
	}
	if limited {
		return domain.VoteResult{}, perr.Newf(perr.ErrorCodeTooManyRequests, "voting too fast")
	}

	// pre-read both ratings; the lock path re-reads, the fallback uses these
	rw, okW, err := s.Repo.EntryElo(ctx, in.PostID, in.Winner)
	if err != nil {
		return domain.VoteResult{}, err
	}
	rl, okL, err := s.Repo.EntryElo(ctx, in.PostID, in.Loser)
	if err != nil {
		return domain.VoteResult{}, err
	}
	if !okW || !okL {
		return domain.VoteResult{}, perr.NotFoundf("entry not in tournament %s", in.PostID)
	}

	lockKey := store.KeyEloLock(in.PostID)
	acquired, err := s.locker.Acquire(ctx, lockKey, eloLockTTL)
	if err != nil {
		return domain.VoteResult{}, err
	}
	if acquired {
		if cur, ok, err := s.Repo.EntryElo(ctx, in.PostID, in.Winner); err == nil && ok {
			rw = cur
		}
		if cur, ok, err := s.Repo.EntryElo(ctx, in.PostID, in.Loser); err == nil && ok {
			rl = cur
		}
	}

	dw, dl := elo.Delta(s.Cfg.K, rw, rl)
	newW, newL := rw+dw, rl+dl
	if err := s.Repo.SetEntryElo(ctx, in.PostID, in.Winner, newW); err != nil {
		if acquired {
			_ = s.locker.Release(ctx, lockKey)
		}
		return domain.VoteResult{}, err
	}
	if err := s.Repo.SetEntryElo(ctx, in.PostID, in.Loser, newL); err != nil {
		if acquired {
			_ = s.locker.Release(ctx, lockKey)
		}
		return domain.VoteResult{}, err
	}
	if acquired {
		_ = s.locker.Release(ctx, lockKey)
	}

	// bookkeeping after the exchange; these are monotone counters
	if err := s.Repo.BumpTournamentVotes(ctx, in.PostID); err != nil {
		return domain.VoteResult{}, err
	}
	if err := s.Repo.BumpEntryVotes(ctx, in.Winner); err != nil {
		return domain.VoteResult{}, err
	}
	if err := s.Repo.BumpPlayer(ctx, in.PostID, in.VoterID); err != nil {
		return domain.VoteResult{}, err
	}

	// voting earns a point; a failed award must not undo the vote
	if s.collab.Progress != nil && s.Cfg.VoteReward > 0 {
		t, _, terr := s.Repo.LoadTournament(ctx, in.PostID)
		community := ""
		if terr == nil {
			community = t.Community
		}
		if _, err := s.collab.Progress.IncrementScore(ctx, progdom.AwardInput{
			Community: community,
			UserID:    in.VoterID,
			Amount:    s.Cfg.VoteReward,
		}); err != nil {
			s.log.Warn().Err(err).Str("voter", in.VoterID).Msg("vote reward failed")
		}
	}

	return domain.VoteResult{WinnerElo: newW, LoserElo: newL}, nil
}
