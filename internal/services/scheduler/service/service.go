// Package service contains the scheduler client and the job runner
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkarena/internal/modkit/repokit"
	"inkarena/internal/modkit/scope"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/logger"
	"inkarena/internal/services/scheduler/domain"
	"inkarena/internal/services/scheduler/repo"
)

// Service defines the scheduler contract
type Service interface {
	domain.SchedulerPort
	domain.RegistryPort

	// Tick drains due jobs once; returns the number dispatched
	Tick(ctx context.Context, now time.Time) (int, error)
	// Run polls for due jobs until ctx is done
	Run(ctx context.Context, interval time.Duration) error
}

const (
	// claimTTL is the per-delivery lease; a crashed worker frees the job
	// for redelivery when it lapses
	claimTTL = 60 * time.Second

	// batchLimit bounds one tick's drain
	batchLimit = 100
)

// Svc implements the scheduler
type Svc struct {
	Repo repo.Repo
	log  logger.Logger

	mu       sync.RWMutex
	handlers map[string]domain.Handler
}

// New constructs a scheduler service
func New(kv repokit.KV, binder repokit.Binder[repo.Repo]) *Svc {
	if kv == nil {
		panic("scheduler.Service requires a non nil KV")
	}
	if binder == nil {
		panic("scheduler.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:     binder.Bind(kv),
		log:      *logger.Named("scheduler"),
		handlers: make(map[string]domain.Handler),
	}
}

// RunJob schedules a job and returns its id. A zero RunAt means now
func (s *Svc) RunJob(ctx context.Context, job domain.Job) (string, error) {
	if strings.TrimSpace(job.Name) == "" {
		return "", perr.InvalidArgf("job name required")
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.RunAt.IsZero() {
		job.RunAt = time.Now().UTC()
	}
	if err := s.Repo.Enqueue(ctx, job); err != nil {
		return "", err
	}
	s.log.Debug().Str("job_id", job.ID).Str("job", job.Name).Time("run_at", job.RunAt).Msg("job scheduled")
	return job.ID, nil
}

// CancelJob removes a pending job; cancelling an unknown id is a no-op
func (s *Svc) CancelJob(ctx context.Context, jobID string) error {
	if jobID == "" {
		return perr.InvalidArgf("job id required")
	}
	return s.Repo.Remove(ctx, jobID)
}

// Register maps a job name to its handler; later registrations win
func (s *Svc) Register(name string, h domain.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = h
}

func (s *Svc) handler(name string) (domain.Handler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[name]
	return h, ok
}

// Tick claims and dispatches every due job once.
// Failed handlers keep their job; the claim lease expiring re-delivers it
func (s *Svc) Tick(ctx context.Context, now time.Time) (int, error) {
	jobs, err := s.Repo.Due(ctx, now, batchLimit)
	if err != nil {
		return 0, err
	}
	ran := 0
	for _, job := range jobs {
		ok, err := s.Repo.Claim(ctx, job.ID, claimTTL)
		if err != nil {
			return ran, err
		}
		if !ok {
			continue // another worker has it
		}
		h, known := s.handler(job.Name)
		if !known {
			s.log.Warn().Str("job_id", job.ID).Str("job", job.Name).Msg("unknown job name, dropping")
			_ = s.Repo.Remove(ctx, job.ID)
			continue
		}
		// handlers and their logging can read the delivery ids off ctx
		jctx := scope.With(ctx, map[string]string{"job_id": job.ID, "job": job.Name})
		if err := h(jctx, job); err != nil {
			s.log.Error().Err(err).Str("job_id", job.ID).Str("job", job.Name).Msg("job failed, will redeliver")
			continue
		}
		if err := s.Repo.Remove(ctx, job.ID); err != nil {
			s.log.Error().Err(err).Str("job_id", job.ID).Msg("job completed but removal failed")
		}
		ran++
	}
	return ran, nil
}

// Run drains due jobs every interval until the context is cancelled
func (s *Svc) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			if _, err := s.Tick(ctx, now.UTC()); err != nil {
				if perr.Retryable(err) {
					s.log.Warn().Err(err).Msg("tick failed, retrying next interval")
					continue
				}
				return err
			}
		}
	}
}
