package service_test

import (
	"context"
	"testing"

	"inkarena/internal/modkit/repokit"
	"inkarena/internal/platform/testkit"
	scheddom "inkarena/internal/services/scheduler/domain"
	"inkarena/internal/services/slate/repo"
	"inkarena/internal/services/slate/service"
)

type fakeSched struct{ jobs []scheddom.Job }

func (f *fakeSched) RunJob(_ context.Context, j scheddom.Job) (string, error) {
	f.jobs = append(f.jobs, j)
	return "job-1", nil
}

func (f *fakeSched) CancelJob(context.Context, string) error { return nil }

func registerCommunity(t *testing.T, kv repokit.KV, sub string) {
	t.Helper()
	if err := kv.ZAdd(context.Background(), "communities:all", repokit.Member{Member: sub}); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestAggregatorChainsInitialJob(t *testing.T) {
	kv, _ := testkit.KV(t)
	svc := service.New(kv, repo.NewKV())
	registerCommunity(t, kv, sub)

	sched := &fakeSched{}
	h := svc.AggregatorHandler(sched)

	err := h(context.Background(), scheddom.Job{
		Name: scheddom.JobSlateAggregator,
		Data: map[string]any{"isInitialJob": true},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(sched.jobs) != 1 {
		t.Fatalf("enqueued = %d, want 1 chained run", len(sched.jobs))
	}
	next := sched.jobs[0]
	if next.Name != scheddom.JobSlateAggregator || !next.Bool("isInitialJob", false) {
		t.Fatalf("chained job = %+v, want initial aggregator", next)
	}
	if next.RunAt.IsZero() {
		t.Fatal("chained run must be scheduled in the future")
	}
}

func TestAggregatorContinuationCarriesOffset(t *testing.T) {
	kv, _ := testkit.KV(t)
	svc := service.New(kv, repo.NewKV())
	for _, s := range []string{"a", "b", "c"} {
		registerCommunity(t, kv, s)
	}

	sched := &fakeSched{}
	h := svc.AggregatorHandler(sched)

	// batchSize 2 forces a continuation after two communities
	err := h(context.Background(), scheddom.Job{
		Name: scheddom.JobSlateAggregator,
		Data: map[string]any{"isInitialJob": false, "batchSize": 2},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(sched.jobs) != 1 {
		t.Fatalf("enqueued = %d, want 1 continuation", len(sched.jobs))
	}
	cont := sched.jobs[0]
	if cont.Int("offset", -1) != 2 {
		t.Fatalf("offset = %d, want 2", cont.Int("offset", -1))
	}
	if cont.Bool("isInitialJob", true) {
		t.Fatal("continuation must not be an initial job")
	}
}
