package service

import (
	"context"

	hostdom "inkarena/internal/services/host/domain"
	scheddom "inkarena/internal/services/scheduler/domain"
)

// LevelUpHandler notifies the user's client about a level crossing.
// Redelivery just repeats the notification, which is harmless
func (s *Svc) LevelUpHandler(realtime hostdom.RealtimePort) scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		userID := job.Str("userId", "")
		if userID == "" {
			return nil
		}
		if realtime == nil {
			return nil
		}
		return realtime.Send(ctx, "user:"+userID, map[string]any{
			"type":  "level_up",
			"level": job.Int("level", 1),
		})
	}
}

// FlairHandler applies the user's level name as community flair
func (s *Svc) FlairHandler(flair hostdom.FlairPort) scheddom.Handler {
	return func(ctx context.Context, job scheddom.Job) error {
		userID := job.Str("userId", "")
		community := job.Str("community", "")
		if userID == "" || community == "" || flair == nil {
			return nil
		}
		text := job.Str("text", "")
		if text == "" {
			// fall back to the level name for the user's current score
			p, err := s.GetScore(ctx, userID)
			if err != nil {
				return err
			}
			text = p.Level.Name
		}
		return flair.Set(ctx, community, userID, text)
	}
}
