package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Grant adds count items to a user's inventory
	Grant(ctx context.Context, userID, item string, count int64) error
	Inventory(ctx context.Context, userID string) (map[string]int64, error)
	// Activate consumes one item and starts its effect
	Activate(ctx context.Context, userID, item string) (Activation, error)
	// ActiveEffects returns live activations, pruning expired ones
	ActiveEffects(ctx context.Context, userID string) (Effects, error)
}
