// Package domain declares scheduler types and ports
package domain

import (
	"context"
	"time"
)

// Recognized job names. Names are part of the wire contract between the
// api and worker binaries; payloads tolerate unknown fields.
const (
	JobSlateAggregator             = "SLATE_AGGREGATOR"
	JobTournamentScheduler         = "TOURNAMENT_SCHEDULER"
	JobTournamentPayout            = "TOURNAMENT_PAYOUT"
	JobUserLevelUp                 = "USER_LEVEL_UP"
	JobSetUserFlair                = "SET_USER_FLAIR"
	JobCreatePinnedPostComment     = "CREATE_PINNED_POST_COMMENT"
	JobCreateTournamentPostComment = "CREATE_TOURNAMENT_POST_COMMENT"
	JobUpdatePinnedComment         = "UPDATE_PINNED_COMMENT"
)

// Job is one scheduled unit of work
type Job struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Data  map[string]any `json:"data,omitempty"`
	RunAt time.Time      `json:"run_at"`
}

// Str reads a string payload field, returning def when absent or mistyped
func (j Job) Str(key, def string) string {
	if v, ok := j.Data[key].(string); ok {
		return v
	}
	return def
}

// Int reads an integer payload field; JSON numbers arrive as float64
func (j Job) Int(key string, def int) int {
	switch v := j.Data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// Bool reads a boolean payload field
func (j Job) Bool(key string, def bool) bool {
	if v, ok := j.Data[key].(bool); ok {
		return v
	}
	return def
}

// Handler processes one job delivery. Handlers must be idempotent:
// delivery is at-least-once and lease expiry can cause redelivery
type Handler func(ctx context.Context, job Job) error

// SchedulerPort is the client surface other modules enqueue through
type SchedulerPort interface {
	// RunJob schedules a job and returns its non-empty id
	RunJob(ctx context.Context, job Job) (string, error)
	// CancelJob removes a pending job by id; unknown ids are a no-op
	CancelJob(ctx context.Context, jobID string) error
}

// RegistryPort maps job names to handlers
type RegistryPort interface {
	Register(name string, h Handler)
}
