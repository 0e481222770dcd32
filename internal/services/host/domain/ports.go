// Package domain declares the capability surface the engine needs from the
// hosting platform. Everything here is an external collaborator: posts,
// comments, media, flair, realtime, and identity lookups.
package domain

import "context"

// User is the host's view of an account
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Comment is a submitted comment handle
type Comment struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
	Text   string `json:"text"`
}

// Post is a host post handle with opaque data attached
type Post struct {
	ID        string            `json:"id"`
	Community string            `json:"community"`
	Title     string            `json:"title"`
	Data      map[string]string `json:"data"`
}

// Upload is the result of a media upload
type Upload struct {
	MediaID  string `json:"media_id"`
	MediaURL string `json:"media_url"`
}

// CommentPort posts and mutates comments
type CommentPort interface {
	Submit(ctx context.Context, postID, text string) (Comment, error)
	Edit(ctx context.Context, commentID, text string) error
	// Distinguish marks a comment as official, optionally pinning it
	Distinguish(ctx context.Context, commentID string, sticky bool) error
	Delete(ctx context.Context, commentID string) error
}

// PostPort creates and reads posts
type PostPort interface {
	Create(ctx context.Context, community, title string, data map[string]string) (Post, error)
	ByID(ctx context.Context, postID string) (Post, error)
	SetData(ctx context.Context, postID string, data map[string]string) error
}

// MediaPort uploads user media
type MediaPort interface {
	Upload(ctx context.Context, url, kind string) (Upload, error)
}

// FlairPort assigns user flair within a community
type FlairPort interface {
	Set(ctx context.Context, community, userID, text string) error
}

// RealtimePort is fire-and-forget messaging; failures are non-fatal
type RealtimePort interface {
	Send(ctx context.Context, channel string, payload map[string]any) error
}

// IdentityPort resolves accounts; results are cached by the ident service
type IdentityPort interface {
	UserByID(ctx context.Context, userID string) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)
	Moderators(ctx context.Context, community string) ([]string, error)
}

// Ports bundles every host collaborator for wiring
type Ports struct {
	Comments CommentPort
	Posts    PostPort
	Media    MediaPort
	Flair    FlairPort
	Realtime RealtimePort
	Identity IdentityPort
}
