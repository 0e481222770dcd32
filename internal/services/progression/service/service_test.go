package service_test

import (
	"context"
	"testing"
	"time"

	"inkarena/internal/platform/testkit"
	boostsrepo "inkarena/internal/services/boosts/repo"
	boostssvc "inkarena/internal/services/boosts/service"
	identdom "inkarena/internal/services/ident/domain"
	"inkarena/internal/services/progression/domain"
	"inkarena/internal/services/progression/repo"
	"inkarena/internal/services/progression/service"
	scheddom "inkarena/internal/services/scheduler/domain"
)

type fakeSched struct{ jobs []scheddom.Job }

func (f *fakeSched) RunJob(_ context.Context, j scheddom.Job) (string, error) {
	f.jobs = append(f.jobs, j)
	return "job-1", nil
}

func (f *fakeSched) CancelJob(context.Context, string) error { return nil }

type fakeIdent struct{ names map[string]string }

func (f fakeIdent) ByID(_ context.Context, id string) (identdom.User, error) {
	return identdom.User{ID: id, Username: f.names[id]}, nil
}

func (f fakeIdent) ByUsername(_ context.Context, name string) (identdom.User, error) {
	return identdom.User{Username: name}, nil
}

func (f fakeIdent) IsModerator(context.Context, string, string) (bool, error) { return false, nil }
func (f fakeIdent) IsAdmin(context.Context, string) (bool, error)             { return false, nil }

func TestLevelForThresholds(t *testing.T) {
	cases := []struct {
		score int64
		rank  int
	}{
		{0, 1}, {19, 1}, {20, 2}, {49, 2}, {50, 3}, {100, 4}, {9999, 9}, {10000, 10}, {50000, 10},
	}
	for _, c := range cases {
		if got := domain.LevelFor(c.score); got.Rank != c.rank {
			t.Fatalf("LevelFor(%d) = rank %d, want %d", c.score, got.Rank, c.rank)
		}
	}
}

func TestIncrementAppliesBestMultiplier(t *testing.T) {
	kv, _ := testkit.KV(t)
	boosts := boostssvc.New(kv, boostsrepo.NewKV(), nil)
	boosts.Now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
	svc := service.New(kv, repo.NewKV(), boosts, nil, nil)
	ctx := context.Background()

	if err := boosts.Grant(ctx, "t2_u", "score_multiplier_2x", 1); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if _, err := boosts.Activate(ctx, "t2_u", "score_multiplier_2x"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	p, err := svc.IncrementScore(ctx, domain.AwardInput{Community: "inkarena", UserID: "t2_u", Amount: 5})
	if err != nil {
		t.Fatalf("IncrementScore: %v", err)
	}
	if p.Score != 10 {
		t.Fatalf("score = %d, want 10 (5 doubled)", p.Score)
	}
}

func TestIncrementWithoutBoosts(t *testing.T) {
	kv, _ := testkit.KV(t)
	svc := service.New(kv, repo.NewKV(), nil, nil, nil)

	p, err := svc.IncrementScore(context.Background(), domain.AwardInput{
		Community: "inkarena", UserID: "t2_u", Amount: 7,
	})
	if err != nil {
		t.Fatalf("IncrementScore: %v", err)
	}
	if p.Score != 7 {
		t.Fatalf("score = %d, want 7", p.Score)
	}
}

func TestLevelCrossingEnqueuesJobs(t *testing.T) {
	kv, _ := testkit.KV(t)
	sched := &fakeSched{}
	svc := service.New(kv, repo.NewKV(), nil, nil, sched)
	ctx := context.Background()

	// 15 points stays on level 1: no jobs
	if _, err := svc.IncrementScore(ctx, domain.AwardInput{Community: "inkarena", UserID: "t2_u", Amount: 15}); err != nil {
		t.Fatalf("IncrementScore: %v", err)
	}
	if len(sched.jobs) != 0 {
		t.Fatalf("jobs = %d, want 0 before a crossing", len(sched.jobs))
	}

	// +10 crosses the 20-point boundary into level 2
	if _, err := svc.IncrementScore(ctx, domain.AwardInput{Community: "inkarena", UserID: "t2_u", Amount: 10}); err != nil {
		t.Fatalf("IncrementScore: %v", err)
	}
	if len(sched.jobs) != 2 {
		t.Fatalf("jobs = %d, want level-up + flair", len(sched.jobs))
	}
	if sched.jobs[0].Name != scheddom.JobUserLevelUp || sched.jobs[1].Name != scheddom.JobSetUserFlair {
		t.Fatalf("jobs = %v %v", sched.jobs[0].Name, sched.jobs[1].Name)
	}
	if sched.jobs[0].Int("level", 0) != 2 {
		t.Fatalf("level payload = %d, want 2", sched.jobs[0].Int("level", 0))
	}
}

func TestSetAndGetScore(t *testing.T) {
	kv, _ := testkit.KV(t)
	svc := service.New(kv, repo.NewKV(), nil, nil, nil)
	ctx := context.Background()

	if err := svc.SetScore(ctx, "t2_u", 120); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	p, err := svc.GetScore(ctx, "t2_u")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if p.Score != 120 || p.Level.Rank != 4 {
		t.Fatalf("progress = %+v, want score 120 level 4", p)
	}
	if p.NextMin != 250 {
		t.Fatalf("next min = %d, want 250", p.NextMin)
	}

	// unknown users read as zero, not as an error
	p2, err := svc.GetScore(ctx, "t2_nobody")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if p2.Score != 0 || p2.Level.Rank != 1 {
		t.Fatalf("progress = %+v, want zero", p2)
	}
}

func TestLeaderboardOrdersAndNames(t *testing.T) {
	kv, _ := testkit.KV(t)
	ident := fakeIdent{names: map[string]string{"t2_a": "ada", "t2_b": "ben", "t2_c": "cy"}}
	svc := service.New(kv, repo.NewKV(), nil, ident, nil)
	ctx := context.Background()

	for id, score := range map[string]int64{"t2_a": 300, "t2_b": 500, "t2_c": 100} {
		if err := svc.SetScore(ctx, id, score); err != nil {
			t.Fatalf("SetScore: %v", err)
		}
	}

	rows, err := svc.Leaderboard(ctx, 2, 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].UserID != "t2_b" || rows[0].Rank != 1 || rows[0].Username != "ben" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].UserID != "t2_a" || rows[1].Rank != 2 {
		t.Fatalf("row 1 = %+v", rows[1])
	}

	// offset pages deeper
	rest, err := svc.Leaderboard(ctx, 2, 2)
	if err != nil {
		t.Fatalf("Leaderboard offset: %v", err)
	}
	if len(rest) != 1 || rest[0].UserID != "t2_c" || rest[0].Rank != 3 {
		t.Fatalf("rest = %+v", rest)
	}
}
