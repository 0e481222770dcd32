// Package repo provides KV persistence for tournaments
package repo

import (
	"context"
	"strconv"
	"time"

	"inkarena/internal/modkit/repokit"
	"inkarena/internal/platform/store"
	"inkarena/internal/services/tournament/domain"
)

// Repo is the minimal persistence surface for tournaments
type Repo interface {
	// Hopper, FIFO by insertion time
	PushHopper(ctx context.Context, sub, word string, ts time.Time) error
	PeekHopper(ctx context.Context, sub string) (string, bool, error)
	PopHopper(ctx context.Context, sub, word string) error

	SchedulerEnabled(ctx context.Context, sub string) (bool, error)
	SetSchedulerEnabled(ctx context.Context, sub string, enabled bool) error

	SaveTournament(ctx context.Context, t domain.Tournament) error
	LoadTournament(ctx context.Context, postID string) (domain.Tournament, bool, error)
	BumpTournamentVotes(ctx context.Context, postID string) error
	Recent(ctx context.Context, limit int64) ([]string, error)

	// Entries zset, scored by Elo
	SaveEntry(ctx context.Context, e domain.Entry) error
	LoadEntry(ctx context.Context, commentID string) (domain.Entry, bool, error)
	EntryElo(ctx context.Context, postID, commentID string) (float64, bool, error)
	SetEntryElo(ctx context.Context, postID, commentID string, elo float64) error
	Entries(ctx context.Context, postID string) ([]domain.Entry, error)
	TopEntries(ctx context.Context, postID string, limit int64) ([]repokit.Member, error)
	EntryCount(ctx context.Context, postID string) (int64, error)
	RemoveEntry(ctx context.Context, postID, commentID string) error
	BumpEntryVotes(ctx context.Context, commentID string) error

	// Players zset, scored by participation
	BumpPlayer(ctx context.Context, postID, userID string) error

	// Payout ledger, written only while the payout lock is held
	PayoutDone(ctx context.Context, postID string, day int) (bool, error)
	MarkPayoutDone(ctx context.Context, postID string, day int, ts time.Time) error
}

type (
	// KV is a binder that wires the repo to a key-value store
	KV struct{}
	// queries implements the Repo interface
	queries struct{ kv repokit.KV }
)

// NewKV returns a binder for the tournament repo
func NewKV() repokit.Binder[Repo] { return KV{} }

// Bind wires a key-value store to the repo
func (KV) Bind(kv repokit.KV) Repo { return &queries{kv: kv} }

func (r *queries) PushHopper(ctx context.Context, sub, word string, ts time.Time) error {
	// keep the original position when a word is queued twice
	if _, ok, err := r.kv.ZScore(ctx, store.KeyTournamentHopper(sub), word); err != nil {
		return err
	} else if ok {
		return nil
	}
	return r.kv.ZAdd(ctx, store.KeyTournamentHopper(sub), repokit.Member{
		Member: word,
		Score:  float64(ts.UnixNano()),
	})
}

func (r *queries) PeekHopper(ctx context.Context, sub string) (string, bool, error) {
	ms, err := r.kv.ZRangeByRank(ctx, store.KeyTournamentHopper(sub), 0, 0, false)
	if err != nil {
		return "", false, err
	}
	if len(ms) == 0 {
		return "", false, nil
	}
	return ms[0].Member, true, nil
}

func (r *queries) PopHopper(ctx context.Context, sub, word string) error {
	return r.kv.ZRem(ctx, store.KeyTournamentHopper(sub), word)
}

func (r *queries) SchedulerEnabled(ctx context.Context, sub string) (bool, error) {
	v, ok, err := r.kv.Get(ctx, store.KeyTournamentSchedulerEnabled(sub))
	if err != nil {
		return false, err
	}
	return ok && v == "1", nil
}

func (r *queries) SetSchedulerEnabled(ctx context.Context, sub string, enabled bool) error {
	if !enabled {
		return r.kv.Del(ctx, store.KeyTournamentSchedulerEnabled(sub))
	}
	return r.kv.Set(ctx, store.KeyTournamentSchedulerEnabled(sub), "1", 0)
}

func (r *queries) SaveTournament(ctx context.Context, t domain.Tournament) error {
	fields := map[string]string{
		"community":  t.Community,
		"word":       t.Word,
		"votes":      strconv.FormatInt(t.Votes, 10),
		"created_at": strconv.FormatInt(t.CreatedAt.Unix(), 10),
	}
	if err := r.kv.HSet(ctx, store.KeyTournament(t.PostID), fields); err != nil {
		return err
	}
	return r.kv.ZAdd(ctx, store.KeyTournamentsAll(), repokit.Member{
		Member: t.PostID,
		Score:  float64(t.CreatedAt.Unix()),
	})
}

func (r *queries) LoadTournament(ctx context.Context, postID string) (domain.Tournament, bool, error) {
	fields, err := r.kv.HGetAll(ctx, store.KeyTournament(postID))
	if err != nil {
		return domain.Tournament{}, false, err
	}
	if len(fields) == 0 {
		return domain.Tournament{}, false, nil
	}
	t := domain.Tournament{PostID: postID, Community: fields["community"], Word: fields["word"]}
	t.Votes, _ = strconv.ParseInt(fields["votes"], 10, 64)
	if ts, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		t.CreatedAt = time.Unix(ts, 0).UTC()
	}
	return t, true, nil
}

func (r *queries) BumpTournamentVotes(ctx context.Context, postID string) error {
	_, err := r.kv.HIncrBy(ctx, store.KeyTournament(postID), "votes", 1)
	return err
}

func (r *queries) Recent(ctx context.Context, limit int64) ([]string, error) {
	ms, err := r.kv.ZRangeByRank(ctx, store.KeyTournamentsAll(), 0, limit-1, true)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Member)
	}
	return out, nil
}

func (r *queries) SaveEntry(ctx context.Context, e domain.Entry) error {
	fields := map[string]string{
		"post_id":    e.PostID,
		"user_id":    e.UserID,
		"media_url":  e.MediaURL,
		"votes":      strconv.FormatInt(e.Votes, 10),
		"created_at": strconv.FormatInt(e.CreatedAt.Unix(), 10),
	}
	if err := r.kv.HSet(ctx, store.KeyTournamentEntry(e.CommentID), fields); err != nil {
		return err
	}
	return r.kv.ZAdd(ctx, store.KeyTournamentEntries(e.PostID), repokit.Member{
		Member: e.CommentID,
		Score:  e.Elo,
	})
}

func (r *queries) LoadEntry(ctx context.Context, commentID string) (domain.Entry, bool, error) {
	fields, err := r.kv.HGetAll(ctx, store.KeyTournamentEntry(commentID))
	if err != nil {
		return domain.Entry{}, false, err
	}
	if len(fields) == 0 {
		return domain.Entry{}, false, nil
	}
	e := domain.Entry{
		CommentID: commentID,
		PostID:    fields["post_id"],
		UserID:    fields["user_id"],
		MediaURL:  fields["media_url"],
	}
	e.Votes, _ = strconv.ParseInt(fields["votes"], 10, 64)
	if ts, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		e.CreatedAt = time.Unix(ts, 0).UTC()
	}
	if elo, ok, err := r.EntryElo(ctx, e.PostID, commentID); err == nil && ok {
		e.Elo = elo
	}
	return e, true, nil
}

func (r *queries) EntryElo(ctx context.Context, postID, commentID string) (float64, bool, error) {
	return r.kv.ZScore(ctx, store.KeyTournamentEntries(postID), commentID)
}

func (r *queries) SetEntryElo(ctx context.Context, postID, commentID string, elo float64) error {
	return r.kv.ZAdd(ctx, store.KeyTournamentEntries(postID), repokit.Member{
		Member: commentID,
		Score:  elo,
	})
}

func (r *queries) Entries(ctx context.Context, postID string) ([]domain.Entry, error) {
	ms, err := r.kv.ZRangeByRank(ctx, store.KeyTournamentEntries(postID), 0, -1, true)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(ms))
	for _, m := range ms {
		e, ok, err := r.LoadEntry(ctx, m.Member)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // metadata gone, skip the orphan
		}
		e.Elo = m.Score
		out = append(out, e)
	}
	return out, nil
}

func (r *queries) TopEntries(ctx context.Context, postID string, limit int64) ([]repokit.Member, error) {
	stop := limit - 1
	if limit <= 0 {
		stop = -1 // whole board
	}
	return r.kv.ZRangeByRank(ctx, store.KeyTournamentEntries(postID), 0, stop, true)
}

func (r *queries) EntryCount(ctx context.Context, postID string) (int64, error) {
	return r.kv.ZCard(ctx, store.KeyTournamentEntries(postID))
}

func (r *queries) RemoveEntry(ctx context.Context, postID, commentID string) error {
	if err := r.kv.ZRem(ctx, store.KeyTournamentEntries(postID), commentID); err != nil {
		return err
	}
	return r.kv.Del(ctx, store.KeyTournamentEntry(commentID))
}

func (r *queries) BumpEntryVotes(ctx context.Context, commentID string) error {
	_, err := r.kv.HIncrBy(ctx, store.KeyTournamentEntry(commentID), "votes", 1)
	return err
}

func (r *queries) BumpPlayer(ctx context.Context, postID, userID string) error {
	_, err := r.kv.ZIncrBy(ctx, store.KeyTournamentPlayers(postID), 1, userID)
	return err
}

func (r *queries) PayoutDone(ctx context.Context, postID string, day int) (bool, error) {
	_, ok, err := r.kv.HGet(ctx, store.KeyPayoutLedger(postID), strconv.Itoa(day))
	return ok, err
}

func (r *queries) MarkPayoutDone(ctx context.Context, postID string, day int, ts time.Time) error {
	return r.kv.HSet(ctx, store.KeyPayoutLedger(postID), map[string]string{
		strconv.Itoa(day): strconv.FormatInt(ts.Unix(), 10),
	})
}
