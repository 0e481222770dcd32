package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// AddPrompt queues a normalized word in the community hopper, FIFO
	AddPrompt(ctx context.Context, community, word string) error
	SetSchedulerEnabled(ctx context.Context, community string, enabled bool) error
	// Tick starts the next tournament from the hopper when the scheduler
	// is enabled and no other instance holds the tick lock
	Tick(ctx context.Context, community string) (TickResult, error)

	// Submit enters a drawing; idempotent by comment id, rate limited
	Submit(ctx context.Context, in SubmitInput) (Entry, error)
	// Pairs deals matchups for voting
	Pairs(ctx context.Context, in PairsInput) ([]Pair, error)
	// Vote applies one Elo exchange; zero-sum, rate limited
	Vote(ctx context.Context, in VoteInput) (VoteResult, error)
	// RemoveEntry drops an entry after its comment disappears
	RemoveEntry(ctx context.Context, commentID string) error

	// Payout runs one idempotent snapshot payout
	Payout(ctx context.Context, in PayoutInput) (PayoutResult, error)

	GetTournament(ctx context.Context, postID string) (Tournament, error)
	ListTournaments(ctx context.Context, limit int) ([]Tournament, error)
}
