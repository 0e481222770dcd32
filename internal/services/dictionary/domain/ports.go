package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// AddWord normalizes and inserts a word; banned words are rejected.
	// Returns the canonical form
	AddWord(ctx context.Context, in AddInput) (string, error)
	RemoveWord(ctx context.Context, community, word string) error
	BanWord(ctx context.Context, community, word string) error
	UnbanWord(ctx context.Context, community, word string) error
	IsWordBanned(ctx context.Context, community, word string) (bool, error)
	// ReplaceAll swaps the active set; scores reset unless preserve is set
	ReplaceAll(ctx context.Context, community string, words []string, preserveScores bool) error
	RandomWords(ctx context.Context, community string, n int) ([]string, error)
	// Initialize seeds the default list when the active set is empty and
	// registers the community in the global index
	Initialize(ctx context.Context, community string) error
	// CommunityExists reports whether a community is registered
	CommunityExists(ctx context.Context, community string) (bool, error)
	ListWords(ctx context.Context, in ListInput) (ListOutput, error)
	// BackingOf resolves a backing comment to its word
	BackingOf(ctx context.Context, community, commentID string) (string, bool, error)
	// RemoveBackedWord drops the word backed by a deleted comment
	RemoveBackedWord(ctx context.Context, community, commentID string) error
}
