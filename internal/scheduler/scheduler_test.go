package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/cafe-go/internal/testutil"
)

func TestNew(t *testing.T) {
	logger := testutil.TestLogger()

	s := New(logger)
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLogger())
	if err := s.Add(Job{Name: "noop", Schedule: "@daily", Run: func(context.Context) error { return nil }}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s.Start()
	s.Stop()
}

func TestScheduler_Add(t *testing.T) {
	s := New(testutil.TestLogger())
	run := func(context.Context) error { return nil }

	if err := s.Add(Job{Name: "a", Schedule: "*/5 * * * *", Run: run}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(Job{Name: "a", Schedule: "@hourly", Run: run}); err == nil {
		t.Error("expected error for duplicate job")
	}
	if err := s.Add(Job{Name: "b", Schedule: "not a schedule", Run: run}); err == nil {
		t.Error("expected error for invalid schedule")
	}
	if err := s.Add(Job{Name: "", Schedule: "@hourly", Run: run}); err == nil {
		t.Error("expected error for missing name")
	}

	jobs := s.Jobs()
	if len(jobs) != 1 || jobs[0].Name != "a" {
		t.Fatalf("Jobs() = %+v", jobs)
	}
}

func TestScheduler_Trigger(t *testing.T) {
	s := New(testutil.TestLogger())
	calls := 0
	boom := errors.New("boom")

	_ = s.Add(Job{Name: "ok", Schedule: "@daily", Run: func(context.Context) error { calls++; return nil }})
	_ = s.Add(Job{Name: "bad", Schedule: "@daily", Run: func(context.Context) error { return boom }})

	if err := s.Trigger("ok"); err != nil {
		t.Fatalf("Trigger(ok): %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err := s.Trigger("bad"); !errors.Is(err, boom) {
		t.Errorf("Trigger(bad) = %v, want boom", err)
	}
	if err := s.Trigger("missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}

type fakePruner struct {
	olderThan time.Duration
	n         int64
}

func (f *fakePruner) DeleteOldEvents(_ context.Context, olderThan time.Duration) (int64, error) {
	f.olderThan = olderThan
	return f.n, nil
}

func TestPruneEventsJob(t *testing.T) {
	p := &fakePruner{n: 3}
	var deleted int64
	job := PruneEventsJob(p, 90*24*time.Hour, func(n int64) { deleted = n })

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.olderThan != 90*24*time.Hour {
		t.Errorf("olderThan = %v", p.olderThan)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return nil
}

func TestRefreshCitiesJob(t *testing.T) {
	inv := &fakeInvalidator{}
	s := New(testutil.TestLogger())
	if err := s.Add(RefreshCitiesJob(inv)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := s.Trigger("refresh-cities"); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if inv.calls != 1 {
		t.Errorf("calls = %d, want 1", inv.calls)
	}
}
