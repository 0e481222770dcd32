// Package domain declares identity types and ports
package domain

import "context"

// User is a resolved account
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	ByID(ctx context.Context, userID string) (User, error)
	ByUsername(ctx context.Context, username string) (User, error)
	IsModerator(ctx context.Context, community, userID string) (bool, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
