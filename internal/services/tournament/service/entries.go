package service

import (
	"context"

	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	"inkarena/internal/services/tournament/domain"
)

// Submit enters a drawing into a tournament. Submission is idempotent by
// comment id: replaying a submit with a known comment returns the
// existing entry untouched
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.Entry, error) {
	if in.PostID == "" || in.UserID == "" {
		return domain.Entry{}, perr.InvalidArgf("post id and user id required")
	}

	if in.CommentID != "" {
		if existing, ok, err := s.Repo.LoadEntry(ctx, in.CommentID); err != nil {
			return domain.Entry{}, err
		} else if ok {
			return existing, nil
		}
	}

	limited, err := s.limiter.Limited(ctx, store.KeyRateSubmit(in.UserID), s.Cfg.SubmitLimit, s.Cfg.SubmitWindow)
	if err != nil {
		return domain.Entry{}, err
	}
	if limited {
		return domain.Entry{}, perr.Newf(perr.ErrorCodeTooManyRequests, "submitting too fast")
	}

	if _, err := s.GetTournament(ctx, in.PostID); err != nil {
		return domain.Entry{}, err
	}

	mediaURL := in.MediaURL
	if mediaURL == "" && in.Drawing != "" {
		up, err := s.collab.Host.Media.Upload(ctx, in.Drawing, "image")
		if err != nil {
			return domain.Entry{}, err
		}
		mediaURL = up.MediaURL
	}

	commentID := in.CommentID
	if commentID == "" {
		c, err := s.collab.Host.Comments.Submit(ctx, in.PostID, mediaURL)
		if err != nil {
			return domain.Entry{}, err
		}
		commentID = c.ID
	}

	e := domain.Entry{
		CommentID: commentID,
		PostID:    in.PostID,
		UserID:    in.UserID,
		MediaURL:  mediaURL,
		Elo:       s.Cfg.InitialElo,
		CreatedAt: s.Now(),
	}
	if err := s.Repo.SaveEntry(ctx, e); err != nil {
		return domain.Entry{}, err
	}
	if err := s.Repo.BumpPlayer(ctx, in.PostID, in.UserID); err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}

// RemoveEntry drops an entry after its comment was deleted or edited away
func (s *Svc) RemoveEntry(ctx context.Context, commentID string) error {
	if commentID == "" {
		return perr.InvalidArgf("comment id required")
	}
	e, ok, err := s.Repo.LoadEntry(ctx, commentID)
	if err != nil {
		return err
	}
	if !ok {
		return nil // already gone
	}
	return s.Repo.RemoveEntry(ctx, e.PostID, commentID)
}

// Pairs deals matchups from a shuffled deck. No pair repeats within a
// deal and consecutive pairs never share an entry; when the deck cannot
// satisfy that it is reshuffled, and dealing stops once no legal pair
// remains
func (s *Svc) Pairs(ctx context.Context, in domain.PairsInput) ([]domain.Pair, error) {
	if in.PostID == "" {
		return nil, perr.InvalidArgf("post id required")
	}
	count := in.Count
	if count <= 0 {
		count = 5
	}

	entries, err := s.Repo.Entries(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 {
		return nil, perr.InvalidArgf("insufficient entries: have %d, need 2", len(entries))
	}

	deck := make([]domain.Entry, len(entries))
	copy(deck, entries)
	s.shuffle(deck)

	pairs := make([]domain.Pair, 0, count)
	var prev *domain.Pair
	i := 0
	redeals := 0
	for len(pairs) < count {
		if i+1 >= len(deck) {
			if redeals >= count {
				break // deck too small to keep dealing legally
			}
			s.shuffle(deck)
			i = 0
			redeals++
			continue
		}
		a, b := deck[i], deck[i+1]
		if prev != nil && sharesEndpoint(*prev, a, b) {
			// look ahead for a partner that avoids the previous pair
			swapped := false
			for j := i + 2; j < len(deck); j++ {
				if !sharesEndpoint(*prev, a, deck[j]) {
					deck[i+1], deck[j] = deck[j], deck[i+1]
					swapped = true
					break
				}
			}
			if !swapped {
				if redeals >= count {
					break
				}
				s.shuffle(deck)
				i = 0
				redeals++
				continue
			}
			b = deck[i+1]
		}
		p := domain.Pair{A: a, B: b}
		pairs = append(pairs, p)
		prev = &pairs[len(pairs)-1]
		i += 2
	}
	if len(pairs) == 0 {
		return nil, perr.InvalidArgf("insufficient entries for a legal pair")
	}
	return pairs, nil
}

func (s *Svc) shuffle(deck []domain.Entry) {
	s.Rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

func sharesEndpoint(prev domain.Pair, a, b domain.Entry) bool {
	for _, id := range []string{a.CommentID, b.CommentID} {
		if id == prev.A.CommentID || id == prev.B.CommentID {
			return true
		}
	}
	return false
}
