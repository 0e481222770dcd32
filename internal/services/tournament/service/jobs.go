package service

import (
	"context"
	"fmt"

	scheddom "inkarena/internal/services/scheduler/domain"
	"inkarena/internal/services/tournament/domain"
)

// TickHandler runs one hopper tick for the community in the payload.
// Busy and skipped outcomes complete the job; the next run tries again
func (s *Svc) TickHandler() scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		community := job.Str("community", "")
		if community == "" {
			return nil
		}
		res, err := s.Tick(ctx, community)
		if err != nil {
			return err
		}
		s.log.Debug().Str("community", community).Str("status", res.Status).Msg("scheduler tick")
		return nil
	}
}

// PayoutHandler runs one snapshot payout. Skipped and busy are terminal:
// the ledger or another worker already owns the snapshot
func (s *Svc) PayoutHandler() scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		postID := job.Str("postId", "")
		day := job.Int("dayIndex", 0)
		if postID == "" || day < 1 {
			return nil
		}
		res, err := s.Payout(ctx, domain.PayoutInput{PostID: postID, DayIndex: day})
		if err != nil {
			return err
		}
		s.log.Info().Str("post_id", postID).Int("day", day).Str("status", res.Status).
			Int("paid", res.Paid).Msg("snapshot payout")
		return nil
	}
}

// TournamentCommentHandler posts and pins the explainer comment on a
// fresh tournament post. Safe on redelivery: a duplicate comment is
// cosmetic, never corrupting
func (s *Svc) TournamentCommentHandler() scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		postID := job.Str("postId", "")
		if postID == "" {
			return nil
		}
		t, err := s.GetTournament(ctx, postID)
		if err != nil {
			return err
		}
		text := fmt.Sprintf(
			"Drawing tournament for %q is open! Submit your drawing as a comment and vote on head-to-head matchups.",
			t.Word)
		c, err := s.collab.Host.Comments.Submit(ctx, postID, text)
		if err != nil {
			return err
		}
		return s.collab.Host.Comments.Distinguish(ctx, c.ID, true)
	}
}

// PinnedCommentHandler posts and pins arbitrary text on a post
func (s *Svc) PinnedCommentHandler() scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		postID := job.Str("postId", "")
		text := job.Str("text", "")
		if postID == "" || text == "" {
			return nil
		}
		c, err := s.collab.Host.Comments.Submit(ctx, postID, text)
		if err != nil {
			return err
		}
		return s.collab.Host.Comments.Distinguish(ctx, c.ID, true)
	}
}

// UpdateCommentHandler edits an existing pinned comment in place
func (s *Svc) UpdateCommentHandler() scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		commentID := job.Str("commentId", "")
		text := job.Str("text", "")
		if commentID == "" || text == "" {
			return nil
		}
		return s.collab.Host.Comments.Edit(ctx, commentID, text)
	}
}
