// Package service contains dictionary workflows
package service

import (
	"context"
	"math/rand"
	"sort"

	"inkarena/internal/core/words"
	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/services/dictionary/domain"
	"inkarena/internal/services/dictionary/repo"
)

// Service defines the dictionary service contract
type Service interface {
	domain.ServicePort
}

// DefaultWordScore is the neutral score a word carries until the bandit
// moves it
const DefaultWordScore = 1.0

// initialUncertainty is the exploration bonus seeded for brand new words
const initialUncertainty = 1.0

// Svc implements the dictionary service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	kv     repokit.KV
}

// New constructs a dictionary service
func New(kv repokit.KV, binder repokit.Binder[repo.Repo]) *Svc {
	if kv == nil {
		panic("dictionary.Service requires a non nil KV")
	}
	if binder == nil {
		panic("dictionary.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(kv), binder: binder, kv: kv}
}

// AddWord normalizes and inserts one word, rejecting banned words.
// Re-adding an existing word is a no-op that keeps its score
func (s *Svc) AddWord(ctx context.Context, in domain.AddInput) (string, error) {
	w, err := words.Normalize(in.Word)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid word")
	}
	banned, err := s.Repo.IsBanned(ctx, in.Community, w)
	if err != nil {
		return "", err
	}
	if banned {
		return "", perr.InvalidArgf("word %q is banned", w)
	}
	_, exists, err := s.Repo.ActiveScore(ctx, in.Community, w)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := s.Repo.AddActive(ctx, in.Community, repokit.Member{Member: w, Score: DefaultWordScore}); err != nil {
			return "", err
		}
		if err := s.Repo.SetUncertainty(ctx, in.Community, repokit.Member{Member: w, Score: initialUncertainty}); err != nil {
			return "", err
		}
	}
	if in.CommentID != "" {
		if err := s.Repo.SetBacking(ctx, in.Community, w, in.CommentID); err != nil {
			return "", err
		}
	}
	return w, nil
}

// RemoveWord drops one word and its bandit side-state
func (s *Svc) RemoveWord(ctx context.Context, community, word string) error {
	w, err := words.Normalize(word)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid word")
	}
	return s.Repo.RemoveActive(ctx, community, w)
}

// BanWord bans a word; banning always evicts it from the active set
func (s *Svc) BanWord(ctx context.Context, community, word string) error {
	w, err := words.Normalize(word)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid word")
	}
	if err := s.Repo.Ban(ctx, community, w); err != nil {
		return err
	}
	return s.Repo.RemoveActive(ctx, community, w)
}

// UnbanWord lifts a ban; the word does not rejoin the active set
func (s *Svc) UnbanWord(ctx context.Context, community, word string) error {
	w, err := words.Normalize(word)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid word")
	}
	return s.Repo.Unban(ctx, community, w)
}

// IsWordBanned reports whether the canonical form of word is banned
func (s *Svc) IsWordBanned(ctx context.Context, community, word string) (bool, error) {
	w, err := words.Normalize(word)
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid word")
	}
	return s.Repo.IsBanned(ctx, community, w)
}

// ReplaceAll swaps the entire active set. Input is normalized and deduped;
// banned words are filtered out. With preserveScores, words that survive
// the swap keep their scores, everything else starts at the default score
func (s *Svc) ReplaceAll(ctx context.Context, community string, list []string, preserveScores bool) error {
	clean := words.NormalizeAll(list)
	if len(clean) == 0 {
		return perr.InvalidArgf("no valid words in replacement list")
	}

	old, err := s.Repo.Active(ctx, community)
	if err != nil {
		return err
	}
	oldScores := make(map[string]float64, len(old))
	for _, m := range old {
		oldScores[m.Member] = m.Score
	}

	next := make([]repokit.Member, 0, len(clean))
	fresh := make([]repokit.Member, 0, len(clean))
	keep := make(map[string]bool, len(clean))
	for _, w := range clean {
		banned, err := s.Repo.IsBanned(ctx, community, w)
		if err != nil {
			return err
		}
		if banned {
			continue
		}
		keep[w] = true
		score := DefaultWordScore
		if preserveScores {
			if prev, had := oldScores[w]; had {
				score = prev
			}
		}
		next = append(next, repokit.Member{Member: w, Score: score})
		if _, existed := oldScores[w]; !existed {
			fresh = append(fresh, repokit.Member{Member: w, Score: initialUncertainty})
		}
	}
	if len(next) == 0 {
		return perr.InvalidArgf("replacement list is entirely banned")
	}

	if err := s.Repo.ReplaceActive(ctx, community, next); err != nil {
		return err
	}
	// clear side-state for words the swap dropped
	var dropped []string
	for _, m := range old {
		if !keep[m.Member] {
			dropped = append(dropped, m.Member)
		}
	}
	if len(dropped) > 0 {
		if err := s.Repo.RemoveActive(ctx, community, dropped...); err != nil {
			return err
		}
	}
	return s.Repo.SetUncertainty(ctx, community, fresh...)
}

// RandomWords draws up to n distinct active words uniformly
func (s *Svc) RandomWords(ctx context.Context, community string, n int) ([]string, error) {
	if n <= 0 {
		n = 3
	}
	all, err := s.Repo.Active(ctx, community)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, perr.NotFoundf("no words for community %q", community)
	}
	idx := rand.Perm(len(all))
	if n > len(all) {
		n = len(all)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, all[i].Member)
	}
	return out, nil
}

// Initialize seeds the default dictionary when the community has no words
// and always registers the community in the global index
func (s *Svc) Initialize(ctx context.Context, community string) error {
	if community == "" {
		return perr.InvalidArgf("community required")
	}
	if err := s.Repo.RegisterCommunity(ctx, community); err != nil {
		return err
	}
	n, err := s.Repo.ActiveCount(ctx, community)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	seed := make([]repokit.Member, 0, len(words.DefaultList))
	unc := make([]repokit.Member, 0, len(words.DefaultList))
	for _, w := range words.DefaultList {
		seed = append(seed, repokit.Member{Member: w, Score: DefaultWordScore})
		unc = append(unc, repokit.Member{Member: w, Score: initialUncertainty})
	}
	if err := s.Repo.AddActive(ctx, community, seed...); err != nil {
		return err
	}
	return s.Repo.SetUncertainty(ctx, community, unc...)
}

// CommunityExists reports whether a community is registered in the global index
func (s *Svc) CommunityExists(ctx context.Context, community string) (bool, error) {
	return s.Repo.CommunityExists(ctx, community)
}

// ListWords pages the active set alphabetically
func (s *Svc) ListWords(ctx context.Context, in domain.ListInput) (domain.ListOutput, error) {
	page, size := in.Page, in.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	all, err := s.Repo.Active(ctx, in.Community)
	if err != nil {
		return domain.ListOutput{}, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Member < all[j].Member })

	start := (page - 1) * size
	if start >= len(all) {
		return domain.ListOutput{Words: []domain.Word{}, Total: int64(len(all))}, nil
	}
	end := min(start+size, len(all))
	out := make([]domain.Word, 0, end-start)
	for _, m := range all[start:end] {
		out = append(out, domain.Word{Word: m.Member, Score: m.Score})
	}
	return domain.ListOutput{Words: out, Total: int64(len(all))}, nil
}

// BackingOf resolves a backing comment id to its word
func (s *Svc) BackingOf(ctx context.Context, community, commentID string) (string, bool, error) {
	return s.Repo.BackingWord(ctx, community, commentID)
}

// RemoveBackedWord drops the word a deleted comment was backing.
// Unknown comment ids are a no-op
func (s *Svc) RemoveBackedWord(ctx context.Context, community, commentID string) error {
	w, ok, err := s.Repo.BackingWord(ctx, community, commentID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.Repo.RemoveActive(ctx, community, w); err != nil {
		return err
	}
	return s.Repo.RemoveBacking(ctx, community, w, commentID)
}
