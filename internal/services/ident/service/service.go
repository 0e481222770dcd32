// Package service contains cached identity workflows.
// Host identity calls are expensive, so every lookup memoizes into the KV:
// usernames hold for 90 days, moderator status 10 days, admin status 1 day.
package service

import (
	"context"
	"strconv"
	"time"

	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/store"
	hostdom "inkarena/internal/services/host/domain"
	"inkarena/internal/services/ident/domain"
)

// Service defines the ident service contract
type Service interface {
	domain.ServicePort
}

const (
	nameTTL  = 90 * 24 * time.Hour
	modTTL   = 10 * 24 * time.Hour
	adminTTL = 24 * time.Hour
)

// Svc implements the ident service
type Svc struct {
	cache    repokit.Cache
	identity hostdom.IdentityPort
}

// New constructs an ident service over a KV cache and the host identity port
func New(kv repokit.KV, identity hostdom.IdentityPort) *Svc {
	if kv == nil {
		panic("ident.Service requires a non nil KV")
	}
	if identity == nil {
		panic("ident.Service requires a non nil identity port")
	}
	return &Svc{cache: repokit.NewCache(kv), identity: identity}
}

// ByID resolves a user id to an account, cached for 90 days
func (s *Svc) ByID(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, perr.InvalidArgf("user id required")
	}
	return store.ThroughJSON(ctx, s.cache, store.KeyUserName(userID), nameTTL,
		func(ctx context.Context) (domain.User, error) {
			u, err := s.identity.UserByID(ctx, userID)
			if err != nil {
				return domain.User{}, err
			}
			return domain.User{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}, nil
		})
}

// ByUsername resolves a username to an account; uncached, the host result
// is then cached under the id key for later ByID hits
func (s *Svc) ByUsername(ctx context.Context, username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, perr.InvalidArgf("username required")
	}
	u, err := s.identity.UserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	out := domain.User{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
	_, _ = store.ThroughJSON(ctx, s.cache, store.KeyUserName(u.ID), nameTTL,
		func(context.Context) (domain.User, error) { return out, nil })
	return out, nil
}

// IsModerator reports whether the user moderates the community, cached 10 days
func (s *Svc) IsModerator(ctx context.Context, community, userID string) (bool, error) {
	if community == "" || userID == "" {
		return false, perr.InvalidArgf("community and user id required")
	}
	raw, err := s.cache.Through(ctx, store.KeyUserMod(userID), modTTL,
		func(ctx context.Context) (string, error) {
			mods, err := s.identity.Moderators(ctx, community)
			if err != nil {
				return "", err
			}
			for _, m := range mods {
				if m == userID {
					return "1", nil
				}
			}
			return "0", nil
		})
	if err != nil {
		return false, err
	}
	return raw == "1", nil
}

// IsAdmin reports whether the user is a platform admin, cached 1 day
func (s *Svc) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, perr.InvalidArgf("user id required")
	}
	raw, err := s.cache.Through(ctx, store.KeyUserAdmin(userID), adminTTL,
		func(ctx context.Context) (string, error) {
			u, err := s.identity.UserByID(ctx, userID)
			if err != nil {
				return "", err
			}
			return strconv.FormatBool(u.IsAdmin), nil
		})
	if err != nil {
		return false, err
	}
	b, _ := strconv.ParseBool(raw)
	return b, nil
}
