package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	GetScore(ctx context.Context, userID string) (Progress, error)
	SetScore(ctx context.Context, userID string, score int64) error
	// IncrementScore credits points, applying the user's best active
	// score multiplier, and reports the resulting score.
	// Level crossings enqueue level-up and flair jobs
	IncrementScore(ctx context.Context, in AwardInput) (Progress, error)
	Leaderboard(ctx context.Context, limit, offset int) ([]Standing, error)
}
