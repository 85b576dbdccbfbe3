package stats

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/sky-flux/factdrill"
	"github.com/sky-flux/factdrill/store"
)

func mustSessionResult(t *testing.T, finished time.Time, ps ...factdrill.Problem) factdrill.SessionResult {
	t.Helper()
	return factdrill.SessionResult{
		ID:         "s-" + finished.Format(time.TimeOnly),
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
		Problems:   ps,
		Results:    factdrill.Summarize(ps),
	}
}

func TestServiceGetUnknown(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	us, err := svc.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if us.UserID != "nobody" || us.Days == nil || len(us.Days) != 0 {
		t.Errorf("Get(unknown) = %+v", us)
	}
}

func TestServiceAddSession(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := NewService(kv, nil)

	if err := svc.AddSession(ctx, "u1", mustSessionResult(t, t0, done(3, 7, true, 2), done(7, 3, false, 4))); err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if err := svc.AddSession(ctx, "u1", mustSessionResult(t, t0.Add(time.Hour), done(3, 7, true, 3))); err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if err := svc.AddSession(ctx, "u1", mustSessionResult(t, t0.Add(24*time.Hour), done(9, 9, true, 1))); err != nil {
		t.Fatalf("AddSession: %v", err)
	}

	us, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	day := us.Days["2025-06-15"]
	if day.Sessions != 2 || day.TotalProblems != 3 || day.CorrectAnswers != 2 {
		t.Errorf("2025-06-15 = %+v", day)
	}
	if len(day.Problems) != 1 || day.Problems[0].TotalAttempts != 3 {
		t.Errorf("2025-06-15 facts = %+v, want one 3x7 with 3 attempts", day.Problems)
	}

	dates, err := svc.Dates(ctx, "u1")
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if want := []string{"2025-06-16", "2025-06-15"}; !slices.Equal(dates, want) {
		t.Errorf("Dates = %v, want %v", dates, want)
	}

	// Other learners are untouched.
	if other, _ := svc.Get(ctx, "u2"); len(other.Days) != 0 {
		t.Errorf("u2 has %d days, want 0", len(other.Days))
	}
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), nil)
	svc.AddSession(ctx, "u1", mustSessionResult(t, t0, done(2, 3, true, 1)))
	svc.AddSession(ctx, "u1", mustSessionResult(t, t0.Add(24*time.Hour), done(2, 3, true, 1)))

	if err := svc.Clear(ctx, "u1", "2025-06-15"); err != nil {
		t.Fatalf("Clear(day): %v", err)
	}
	dates, _ := svc.Dates(ctx, "u1")
	if !slices.Equal(dates, []string{"2025-06-16"}) {
		t.Errorf("after Clear(day) Dates = %v", dates)
	}

	if err := svc.Clear(ctx, "u1", ""); err != nil {
		t.Fatalf("Clear(all): %v", err)
	}
	dates, _ = svc.Dates(ctx, "u1")
	if len(dates) != 0 {
		t.Errorf("after Clear(all) Dates = %v", dates)
	}
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := NewService(kv, nil)
	svc.AddSession(ctx, "u1", mustSessionResult(t, t0, done(4, 4, true, 1)))

	if err := svc.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, Key("u1")); err == nil {
		t.Error("stats record still present after Delete")
	}
}

func TestServiceWithSession(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), nil)

	s, err := factdrill.NewSession(factdrill.EngineConfig{Seed: 3})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.OnFinish(func(r factdrill.SessionResult) {
		if err := svc.AddSession(ctx, "u1", r); err != nil {
			t.Errorf("AddSession: %v", err)
		}
	})

	cfg := factdrill.DefaultSessionConfig()
	cfg.Operands = []int{6}
	cfg.ProblemCount = 4
	if err := s.Start(cfg, t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	now := t0
	for p := s.Current(); p != nil; p = s.Current() {
		now = now.Add(time.Second)
		s.SubmitAnswer("0", now)
		s.Advance(now)
	}

	us, _ := svc.Get(ctx, "u1")
	day := us.Days["2025-06-15"]
	if day.TotalProblems != 4 || day.CorrectAnswers != 0 || day.Sessions != 1 {
		t.Errorf("recorded day = %+v", day)
	}
}
