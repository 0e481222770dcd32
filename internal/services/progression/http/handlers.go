// Package http provides http transport for progression
package http

import (
	stdhttp "net/http"

	"inkarena/internal/modkit/httpkit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/services/progression/domain"
	svc "inkarena/internal/services/progression/service"
)

// Register mounts progression endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/score", h.score)
	httpkit.Get(r, "/leaderboard", h.leaderboard)
	httpkit.PostJSON[domain.AwardInput](r, "/award", h.award)
}

type handlers struct{ svc svc.Service }

// @Summary Read a user's score and level
// @Tags Progress
// @Router /progress/score [get]
func (h *handlers) score(r *stdhttp.Request) (any, error) {
	userID := httpkit.QueryStr(r, "user_id", "")
	if userID == "" {
		return nil, perr.InvalidArgf("user_id query param required")
	}
	return h.svc.GetScore(r.Context(), userID)
}

// @Summary Read the leaderboard
// @Tags Progress
// @Router /progress/leaderboard [get]
func (h *handlers) leaderboard(r *stdhttp.Request) (any, error) {
	limit := httpkit.QueryInt(r, "limit", 10)
	offset := httpkit.QueryInt(r, "offset", 0)
	return h.svc.Leaderboard(r.Context(), limit, offset)
}

// @Summary Award points to a user
// @Tags Progress
// @Router /progress/award [post]
func (h *handlers) award(r *stdhttp.Request, in domain.AwardInput) (any, error) {
	return h.svc.IncrementScore(r.Context(), in)
}
