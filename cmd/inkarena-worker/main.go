package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"inkarena/internal/platform/config"
	"inkarena/internal/platform/logger"
	"inkarena/internal/platform/store"

	scheddom "inkarena/internal/services/scheduler/domain"

	boostsrepo "inkarena/internal/services/boosts/repo"
	boostssvc "inkarena/internal/services/boosts/service"
	hostdevnull "inkarena/internal/services/host/devnull"
	identsvc "inkarena/internal/services/ident/service"
	progrepo "inkarena/internal/services/progression/repo"
	progsvc "inkarena/internal/services/progression/service"
	schedrepo "inkarena/internal/services/scheduler/repo"
	schedsvc "inkarena/internal/services/scheduler/service"
	slaterepo "inkarena/internal/services/slate/repo"
	slatesvc "inkarena/internal/services/slate/service"
	tourndom "inkarena/internal/services/tournament/domain"
	tournrepo "inkarena/internal/services/tournament/repo"
	tournsvc "inkarena/internal/services/tournament/service"
)

func main() {
	root := config.New()
	kvCfg := root.Prefix("SERVICE_REDIS_")
	wrkCfg := root.Prefix("CORE_WORKER_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "inkarena",
		Redis: store.RedisConfig{
			Enabled: true,
			URL:     kvCfg.MayString("URL", ""),
			Addr:    kvCfg.MayString("ADDR", "127.0.0.1:6379"),
			DB:      kvCfg.MayInt("DB", 0),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fInterval = flag.Duration("interval", wrkCfg.MayDuration("POLL_INTERVAL", 5*time.Second), "scheduler poll interval")
		fSeed     = flag.Bool("seed-aggregator", wrkCfg.MayBool("SEED_AGGREGATOR", false), "enqueue the initial hourly slate aggregator job")
	)
	flag.Parse()

	host := hostdevnull.Ports()

	sched := schedsvc.New(st.KV, schedrepo.NewKV())
	ident := identsvc.New(st.KV, host.Identity)
	boosts := boostssvc.New(st.KV, boostsrepo.NewKV(), host.Realtime)
	slate := slatesvc.New(st.KV, slaterepo.NewKV())
	progress := progsvc.New(st.KV, progrepo.NewKV(), boosts, ident, sched)
	tourn := tournsvc.New(st.KV, tournrepo.NewKV(), tourndom.ConfigFromEnv(root), tournsvc.Collaborators{
		Host:      host,
		Progress:  progress,
		Scheduler: sched,
	})

	// every job the api enqueues needs a handler here
	sched.Register(scheddom.JobSlateAggregator, slate.AggregatorHandler(sched))
	sched.Register(scheddom.JobTournamentScheduler, tourn.TickHandler())
	sched.Register(scheddom.JobTournamentPayout, tourn.PayoutHandler())
	sched.Register(scheddom.JobCreateTournamentPostComment, tourn.TournamentCommentHandler())
	sched.Register(scheddom.JobCreatePinnedPostComment, tourn.PinnedCommentHandler())
	sched.Register(scheddom.JobUpdatePinnedComment, tourn.UpdateCommentHandler())
	sched.Register(scheddom.JobUserLevelUp, progress.LevelUpHandler(host.Realtime))
	sched.Register(scheddom.JobSetUserFlair, progress.FlairHandler(host.Flair))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *fSeed {
		if _, err := sched.RunJob(ctx, scheddom.Job{Name: scheddom.JobSlateAggregator}); err != nil {
			l.Error().Err(err).Msg("aggregator seed failed")
		}
	}

	l.Info().Dur("interval", *fInterval).Msg("worker started")
	if err := sched.Run(ctx, *fInterval); err != nil && ctx.Err() == nil {
		l.Panic().Err(err).Msg("scheduler stopped")
	}
	l.Info().Msg("worker stopped")
}
