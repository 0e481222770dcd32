// Package domain declares tournament types and ports
package domain

import (
	"strconv"
	"time"

	"inkarena/internal/platform/config"
)

// Tournament is one paired-comparison contest attached to a host post
type Tournament struct {
	PostID    string    `json:"post_id"`
	Community string    `json:"community"`
	Word      string    `json:"word"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is one contest submission, rated by Elo
type Entry struct {
	CommentID string    `json:"comment_id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	MediaURL  string    `json:"media_url,omitempty"`
	Elo       float64   `json:"elo"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// Pair is one matchup served to a voter
type Pair struct {
	A Entry `json:"a"`
	B Entry `json:"b"`
}

// Config tunes the tournament engine, read from TOURNEY_* env vars
type Config struct {
	InitialElo     float64
	K              float64
	SnapshotCount  int
	SnapshotWindow time.Duration
	TopPercent     int
	TopReward      int64
	Ladder         []int64
	VoteReward     int64
	SubmitLimit    int64
	SubmitWindow   time.Duration
	VoteLimit      int64
	VoteWindow     time.Duration
}

// DefaultConfig returns the stock tournament tuning
func DefaultConfig() Config {
	return Config{
		InitialElo:     1200,
		K:              32,
		SnapshotCount:  3,
		SnapshotWindow: 24 * time.Hour,
		TopPercent:     20,
		TopReward:      50,
		Ladder:         []int64{100, 50, 25},
		VoteReward:     1,
		SubmitLimit:    2,
		SubmitWindow:   10 * time.Second,
		VoteLimit:      3,
		VoteWindow:     time.Second,
	}
}

// ConfigFromEnv reads overrides from the TOURNEY_ view
func ConfigFromEnv(cfg config.Conf) Config {
	c := cfg.Prefix("TOURNEY_")
	out := DefaultConfig()
	out.InitialElo = c.MayFloat64("INITIAL_ELO", out.InitialElo)
	out.K = c.MayFloat64("ELO_K", out.K)
	out.SnapshotCount = c.MayInt("SNAPSHOT_COUNT", out.SnapshotCount)
	out.SnapshotWindow = c.MayDuration("SNAPSHOT_WINDOW", out.SnapshotWindow)
	out.TopPercent = c.MayInt("TOP_PERCENT", out.TopPercent)
	out.TopReward = int64(c.MayInt("TOP_REWARD", int(out.TopReward)))
	out.VoteReward = int64(c.MayInt("VOTE_REWARD", int(out.VoteReward)))
	if raw := c.MayCSV("LADDER", nil); len(raw) > 0 {
		ladder := make([]int64, 0, len(raw))
		for _, s := range raw {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				ladder = nil
				break
			}
			ladder = append(ladder, n)
		}
		if ladder != nil {
			out.Ladder = ladder
		}
	}
	return out
}

// PromptInput queues a word in the hopper
type PromptInput struct {
	Community string `json:"community" validate:"required"`
	Word      string `json:"word" validate:"required"`
}

// SchedulerInput toggles the hopper scheduler
type SchedulerInput struct {
	Community string `json:"community" validate:"required"`
	Enabled   bool   `json:"enabled"`
}

// TickInput runs one hopper tick
type TickInput struct {
	Community string `json:"community" validate:"required"`
}

// TickResult reports what one hopper tick did
type TickResult struct {
	// Status is "started", "skipped", or "busy"
	Status string `json:"status"`
	PostID string `json:"post_id,omitempty"`
	Word   string `json:"word,omitempty"`
}

// SubmitInput enters a drawing into a tournament
type SubmitInput struct {
	PostID   string `json:"post_id" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	Drawing  string `json:"drawing" validate:"required"`
	MediaURL string `json:"media_url,omitempty"`
	// CommentID makes resubmission idempotent when the host already
	// assigned a comment
	CommentID string `json:"comment_id,omitempty"`
}

// PairsInput requests matchups for a voter
type PairsInput struct {
	PostID string `json:"post_id" validate:"required"`
	Count  int    `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
}

// VoteInput records one matchup outcome
type VoteInput struct {
	PostID  string `json:"post_id" validate:"required"`
	VoterID string `json:"voter_id" validate:"required"`
	Winner  string `json:"winner" validate:"required"`
	Loser   string `json:"loser" validate:"required"`
}

// VoteResult reports the post-vote ratings
type VoteResult struct {
	WinnerElo float64 `json:"winner_elo"`
	LoserElo  float64 `json:"loser_elo"`
}

// RemoveInput drops an entry, typically after comment deletion
type RemoveInput struct {
	CommentID string `json:"comment_id" validate:"required"`
}

// PayoutInput runs one snapshot payout
type PayoutInput struct {
	PostID   string `json:"post_id" validate:"required"`
	DayIndex int    `json:"day_index" validate:"required,min=1"`
}

// PayoutResult summarizes one snapshot payout
type PayoutResult struct {
	// Status is "paid", "skipped" (already in the ledger), or "busy"
	Status  string `json:"status"`
	Paid    int    `json:"paid,omitempty"`
	Cutoff  int    `json:"cutoff,omitempty"`
	Entries int    `json:"entries,omitempty"`
}
