// Package http provides http transport for the slate engine
package http

import (
	stdhttp "net/http"

	"inkarena/internal/modkit/httpkit"
	"inkarena/internal/services/slate/domain"
	svc "inkarena/internal/services/slate/service"
)

// Register mounts slate endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.GenerateInput](r, "/generate", h.generate)
	httpkit.PostJSON[domain.ImpressionInput](r, "/impression", h.impression)
	httpkit.PostJSON[domain.PickInput](r, "/pick", h.pick)
	httpkit.PostJSON[domain.PublishInput](r, "/publish", h.publish)
	httpkit.PostJSON[domain.RefreshInput](r, "/refresh", h.refresh)
	httpkit.Get(r, "/config", h.config)
	httpkit.PutJSON[domain.Config](r, "/config", h.setConfig)
}

type handlers struct{ svc svc.Service }

// @Summary Generate a word slate
// @Tags Slate
// @Accept json
// @Produce json
// @Param payload body domain.GenerateInput true "Request"
// @Router /slate/generate [post]
func (h *handlers) generate(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	return h.svc.GenerateSlate(r.Context(), in.Community, in.Count)
}

// @Summary Record a slate impression
// @Tags Slate
// @Router /slate/impression [post]
func (h *handlers) impression(r *stdhttp.Request, in domain.ImpressionInput) (any, error) {
	return nil, h.svc.RecordImpression(r.Context(), in.SlateID)
}

// @Summary Record a word pick
// @Tags Slate
// @Router /slate/pick [post]
func (h *handlers) pick(r *stdhttp.Request, in domain.PickInput) (any, error) {
	return nil, h.svc.RecordPick(r.Context(), in.SlateID, in.Word)
}

// @Summary Record a published drawing
// @Tags Slate
// @Router /slate/publish [post]
func (h *handlers) publish(r *stdhttp.Request, in domain.PublishInput) (any, error) {
	return nil, h.svc.RecordPublish(r.Context(), in.Community, in.Word)
}

// @Summary Run one score-update pass
// @Tags Slate
// @Router /slate/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request, in domain.RefreshInput) (any, error) {
	return nil, h.svc.UpdateScores(r.Context(), in.Community)
}

// @Summary Read the bandit config
// @Tags Slate
// @Router /slate/config [get]
func (h *handlers) config(r *stdhttp.Request) (any, error) {
	return h.svc.Config(r.Context())
}

// @Summary Replace the bandit config
// @Tags Slate
// @Router /slate/config [put]
func (h *handlers) setConfig(r *stdhttp.Request, in domain.Config) (any, error) {
	if err := h.svc.SetConfig(r.Context(), in); err != nil {
		return nil, err
	}
	return h.svc.Config(r.Context())
}
