// Package http provides http transport for boosts
package http

import (
	stdhttp "net/http"

	"inkarena/internal/modkit/httpkit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/services/boosts/domain"
	svc "inkarena/internal/services/boosts/service"
)

// Register mounts boost endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.GrantInput](r, "/grant", h.grant)
	httpkit.PostJSON[domain.ActivateInput](r, "/activate", h.activate)
	httpkit.Get(r, "/active", h.active)
	httpkit.Get(r, "/inventory", h.inventory)
}

type handlers struct{ svc svc.Service }

// @Summary Grant items to a user
// @Tags Boosts
// @Router /boosts/grant [post]
func (h *handlers) grant(r *stdhttp.Request, in domain.GrantInput) (any, error) {
	return nil, h.svc.Grant(r.Context(), in.UserID, in.Item, in.Count)
}

// @Summary Activate a consumable
// @Tags Boosts
// @Router /boosts/activate [post]
func (h *handlers) activate(r *stdhttp.Request, in domain.ActivateInput) (any, error) {
	return h.svc.Activate(r.Context(), in.UserID, in.Item)
}

// @Summary List active effects
// @Tags Boosts
// @Router /boosts/active [get]
func (h *handlers) active(r *stdhttp.Request) (any, error) {
	userID, err := subject(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ActiveEffects(r.Context(), userID)
}

// @Summary Read a user's inventory
// @Tags Boosts
// @Router /boosts/inventory [get]
func (h *handlers) inventory(r *stdhttp.Request) (any, error) {
	userID, err := subject(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Inventory(r.Context(), userID)
}

// subject resolves whose boosts to read: the user_id param when given,
// otherwise the authenticated caller
func subject(r *stdhttp.Request) (string, error) {
	if userID := httpkit.QueryStr(r, "user_id", ""); userID != "" {
		return userID, nil
	}
	userID, err := httpkit.User(r)
	if err != nil {
		return "", perr.InvalidArgf("user_id query param required for unauthenticated calls")
	}
	return userID, nil
}
