// Package http provides http transport for the dictionary
package http

import (
	stdhttp "net/http"

	"inkarena/internal/modkit/httpkit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/net/middleware"
	"inkarena/internal/services/dictionary/domain"
	svc "inkarena/internal/services/dictionary/service"
)

// Register mounts dictionary endpoints on the given router.
// Moderation endpoints sit behind bearer auth; suggestion and read
// endpoints stay open
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AddInput](r, "/add", h.add)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.Get(r, "/random", h.random)

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.RemoveInput](pr, "/remove", h.remove)
		httpkit.PostJSON[domain.BanInput](pr, "/ban", h.ban)
		httpkit.PostJSON[domain.BanInput](pr, "/unban", h.unban)
		httpkit.PostJSON[domain.ReplaceInput](pr, "/replace", h.replace)
		httpkit.Post(pr, "/init", h.initialize)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Add a word
// @Tags Words
// @Accept json
// @Produce json
// @Param payload body domain.AddInput true "Word"
// @Router /words/add [post]
func (h *handlers) add(r *stdhttp.Request, in domain.AddInput) (any, error) {
	w, err := h.svc.AddWord(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return map[string]string{"word": w}, nil
}

// @Summary Remove a word
// @Tags Words
// @Router /words/remove [post]
func (h *handlers) remove(r *stdhttp.Request, in domain.RemoveInput) (any, error) {
	return nil, h.svc.RemoveWord(r.Context(), in.Community, in.Word)
}

// @Summary Ban a word
// @Tags Words
// @Router /words/ban [post]
func (h *handlers) ban(r *stdhttp.Request, in domain.BanInput) (any, error) {
	return nil, h.svc.BanWord(r.Context(), in.Community, in.Word)
}

// @Summary Unban a word
// @Tags Words
// @Router /words/unban [post]
func (h *handlers) unban(r *stdhttp.Request, in domain.BanInput) (any, error) {
	return nil, h.svc.UnbanWord(r.Context(), in.Community, in.Word)
}

// @Summary Replace the active word list
// @Tags Words
// @Router /words/replace [post]
func (h *handlers) replace(r *stdhttp.Request, in domain.ReplaceInput) (any, error) {
	return nil, h.svc.ReplaceAll(r.Context(), in.Community, in.Words, in.PreserveScores)
}

// @Summary Page the active word list
// @Tags Words
// @Router /words/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.ListWords(r.Context(), in)
}

// @Summary Draw random words
// @Tags Words
// @Router /words/random [get]
func (h *handlers) random(r *stdhttp.Request) (any, error) {
	community := r.URL.Query().Get("community")
	if community == "" {
		return nil, perr.InvalidArgf("community query param required")
	}
	n := httpkit.QueryInt(r, "count", 3)
	words, err := h.svc.RandomWords(r.Context(), community, n)
	if err != nil {
		return nil, err
	}
	return map[string]any{"words": words}, nil
}

// @Summary Initialize a community dictionary
// @Tags Words
// @Router /words/init [post]
func (h *handlers) initialize(r *stdhttp.Request) (any, error) {
	community := r.URL.Query().Get("community")
	if community == "" {
		return nil, perr.InvalidArgf("community query param required")
	}
	return nil, h.svc.Initialize(r.Context(), community)
}
