package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// GenerateSlate selects count words and persists the slate
	GenerateSlate(ctx context.Context, community string, count int) (Slate, error)
	// RecordImpression counts a serve for every word on the slate.
	// Expired or unknown slates are skipped without error
	RecordImpression(ctx context.Context, slateID string) error
	// RecordPick counts a selection of one word from the slate
	RecordPick(ctx context.Context, slateID, word string) error
	// RecordPublish counts a published drawing for a word
	RecordPublish(ctx context.Context, community, word string) error
	// UpdateScores runs one aggregator pass for a community under its lock
	UpdateScores(ctx context.Context, community string) error
	Config(ctx context.Context) (Config, error)
	SetConfig(ctx context.Context, cfg Config) error
}
