// Package http provides http transport for tournaments
package http

import (
	stdhttp "net/http"

	"inkarena/internal/modkit/httpkit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/services/tournament/domain"
	svc "inkarena/internal/services/tournament/service"
)

// Register mounts tournament endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.PromptInput](r, "/prompt", h.prompt)
	httpkit.PostJSON[domain.SchedulerInput](r, "/scheduler", h.scheduler)
	httpkit.PostJSON[domain.TickInput](r, "/tick", h.tick)
	httpkit.PostJSON[domain.SubmitInput](r, "/submit", h.submit)
	httpkit.PostJSON[domain.PairsInput](r, "/pairs", h.pairs)
	httpkit.PostJSON[domain.VoteInput](r, "/vote", h.vote)
	httpkit.PostJSON[domain.RemoveInput](r, "/remove", h.remove)
	httpkit.PostJSON[domain.PayoutInput](r, "/payout", h.payout)
	httpkit.Get(r, "/list", h.list)
	httpkit.Get(r, "/get", h.get)
}

type handlers struct{ svc svc.Service }

// @Summary Queue a tournament prompt
// @Tags Tournament
// @Router /tournament/prompt [post]
func (h *handlers) prompt(r *stdhttp.Request, in domain.PromptInput) (any, error) {
	return nil, h.svc.AddPrompt(r.Context(), in.Community, in.Word)
}

// @Summary Toggle the hopper scheduler
// @Tags Tournament
// @Router /tournament/scheduler [post]
func (h *handlers) scheduler(r *stdhttp.Request, in domain.SchedulerInput) (any, error) {
	return nil, h.svc.SetSchedulerEnabled(r.Context(), in.Community, in.Enabled)
}

// @Summary Run one hopper tick
// @Tags Tournament
// @Router /tournament/tick [post]
func (h *handlers) tick(r *stdhttp.Request, in domain.TickInput) (any, error) {
	return h.svc.Tick(r.Context(), in.Community)
}

// @Summary Submit a drawing entry
// @Tags Tournament
// @Router /tournament/submit [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), in)
}

// @Summary Deal voting pairs
// @Tags Tournament
// @Router /tournament/pairs [post]
func (h *handlers) pairs(r *stdhttp.Request, in domain.PairsInput) (any, error) {
	return h.svc.Pairs(r.Context(), in)
}

// @Summary Vote on a matchup
// @Tags Tournament
// @Router /tournament/vote [post]
func (h *handlers) vote(r *stdhttp.Request, in domain.VoteInput) (any, error) {
	return h.svc.Vote(r.Context(), in)
}

// @Summary Remove an entry
// @Tags Tournament
// @Router /tournament/remove [post]
func (h *handlers) remove(r *stdhttp.Request, in domain.RemoveInput) (any, error) {
	return nil, h.svc.RemoveEntry(r.Context(), in.CommentID)
}

// @Summary Run a snapshot payout
// @Tags Tournament
// @Router /tournament/payout [post]
func (h *handlers) payout(r *stdhttp.Request, in domain.PayoutInput) (any, error) {
	return h.svc.Payout(r.Context(), in)
}

// @Summary List recent tournaments
// @Tags Tournament
// @Router /tournament/list [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.ListTournaments(r.Context(), httpkit.QueryInt(r, "limit", 10))
}

// @Summary Read one tournament
// @Tags Tournament
// @Router /tournament/get [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	postID := httpkit.QueryStr(r, "post_id", "")
	if postID == "" {
		return nil, perr.InvalidArgf("post_id query param required")
	}
	return h.svc.GetTournament(r.Context(), postID)
}
