package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/pnkjpro/oathly/internal/storage"
)

func newTestService(t *testing.T) (*Service, *sql.DB, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc, err := NewService(ctx, db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	cleanup := func() {
		_ = db.Close()
	}
	return svc, db, cleanup
}

func testInput(name string, start, end time.Time) TargetInput {
	return TargetInput{
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		DailyTarget: 6,
		TargetDays:  13,
		BufferDays:  2,
	}
}

func TestSeedFirstRunOnly(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	today := date(2025, time.May, 17)
	if err := svc.Seed(ctx, today); err != nil {
		t.Fatalf("seed: %v", err)
	}

	targets := svc.SortedTargets()
	if len(targets) != 1 {
		t.Fatalf("seeded %d targets, want 1", len(targets))
	}
	seeded := targets[0]
	if seeded.Name != "Exam Prep" {
		t.Fatalf("seeded name=%q, want Exam Prep", seeded.Name)
	}
	if seeded.TotalDays != 14 {
		t.Fatalf("seeded totalDays=%d, want 14", seeded.TotalDays)
	}
	if seeded.DailyTarget != 6 || seeded.TargetDays != 13 || seeded.BufferDays != 2 {
		t.Fatalf("seeded defaults wrong: daily=%v days=%d buffer=%d", seeded.DailyTarget, seeded.TargetDays, seeded.BufferDays)
	}
	active := svc.ActiveTarget()
	if active == nil || active.ID != seeded.ID {
		t.Fatalf("seeded target is not active")
	}

	// Second run is a no-op.
	if err := svc.Seed(ctx, today.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if got := len(svc.SortedTargets()); got != 1 {
		t.Fatalf("seed ran twice: %d targets", got)
	}
}

func TestAddTargetComputesAndActivates(t *testing.T) {
	svc, db, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id, err := svc.AddTarget(ctx, testInput("BSPHCL Exam", date(2025, time.May, 17), date(2025, time.June, 2)))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	tg := svc.Target(id)
	if tg == nil {
		t.Fatalf("added target not found")
	}
	if tg.TotalDays != 17 {
		t.Fatalf("totalDays=%d, want 17", tg.TotalDays)
	}
	if tg.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
	if active := svc.ActiveTarget(); active == nil || active.ID != id {
		t.Fatalf("new target is not active")
	}

	// Reload from disk: the mutation must have been persisted.
	svc2, err := NewService(ctx, db)
	if err != nil {
		t.Fatalf("reopen service: %v", err)
	}
	if got := svc2.Target(id); got == nil || got.Name != "BSPHCL Exam" {
		t.Fatalf("persisted target missing after reload")
	}
	if active := svc2.ActiveTarget(); active == nil || active.ID != id {
		t.Fatalf("active pointer not persisted")
	}
}

func TestAddTargetValidation(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	cases := []struct {
		name string
		in   TargetInput
	}{
		{"empty name", testInput("  ", date(2025, time.May, 17), date(2025, time.June, 2))},
		{"zero daily target", func() TargetInput {
			in := testInput("x", date(2025, time.May, 17), date(2025, time.June, 2))
			in.DailyTarget = 0
			return in
		}()},
		{"negative buffer", func() TargetInput {
			in := testInput("x", date(2025, time.May, 17), date(2025, time.June, 2))
			in.BufferDays = -1
			return in
		}()},
		{"negative reward cost", func() TargetInput {
			in := testInput("x", date(2025, time.May, 17), date(2025, time.June, 2))
			in.RewardCost = -5
			return in
		}()},
	}
	for _, tc := range cases {
		if _, err := svc.AddTarget(ctx, tc.in); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
	if got := len(svc.SortedTargets()); got != 0 {
		t.Fatalf("rejected input still created %d targets", got)
	}
}

func TestAddTargetAllowsInvertedDates(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// Date inversion is the caller's problem: it yields a non-positive
	// totalDays rather than an error.
	id, err := svc.AddTarget(ctx, testInput("backwards", date(2025, time.June, 2), date(2025, time.May, 17)))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tg := svc.Target(id); tg.TotalDays > 0 {
		t.Fatalf("totalDays=%d for inverted dates, want <= 0", tg.TotalDays)
	}
}

func TestUpdateTargetPreservesProgress(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	start := date(2025, time.May, 17)
	id, err := svc.AddTarget(ctx, testInput("Exam", start, start.AddDate(0, 0, 16)))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.LogHours(ctx, id, 6, start); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := svc.CompleteExam(ctx, id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before := *svc.Target(id)

	in := testInput("Exam v2", start, start.AddDate(0, 0, 20))
	if err := svc.UpdateTarget(ctx, id, in); err != nil {
		t.Fatalf("update: %v", err)
	}

	after := svc.Target(id)
	if after.Name != "Exam v2" {
		t.Fatalf("name not updated: %q", after.Name)
	}
	if after.TotalDays != 21 {
		t.Fatalf("totalDays=%d after update, want 21", after.TotalDays)
	}
	if after.ID != before.ID || !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("update changed id or createdAt")
	}
	if len(after.ActivityLog) != 1 || !after.ExamCompleted {
		t.Fatalf("update touched activity log or completion flag")
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	in := testInput("ghost", date(2025, time.May, 17), date(2025, time.June, 2))
	if err := svc.UpdateTarget(ctx, "nope", in); err != nil {
		t.Fatalf("update unknown id: %v", err)
	}
	if err := svc.DeleteTarget(ctx, "nope"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	if err := svc.CompleteExam(ctx, "nope"); err != nil {
		t.Fatalf("complete unknown id: %v", err)
	}
	if err := svc.ResetProgress(ctx, "nope"); err != nil {
		t.Fatalf("reset unknown id: %v", err)
	}
	if err := svc.RemoveTodayLog(ctx, "nope", date(2025, time.May, 17)); err != nil {
		t.Fatalf("unlog unknown id: %v", err)
	}
	res, err := svc.LogHours(ctx, "nope", 3, date(2025, time.May, 17))
	if err != nil || res != nil {
		t.Fatalf("log unknown id: res=%v err=%v, want nil/nil", res, err)
	}
	pres, err := svc.CheckPenalty(ctx, "nope", date(2025, time.May, 17))
	if err != nil || pres != nil {
		t.Fatalf("check unknown id: res=%v err=%v, want nil/nil", pres, err)
	}
}

func TestDeleteTargetReassignsActive(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	start := date(2025, time.May, 17)
	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		id, err := svc.AddTarget(ctx, testInput(name, start, start.AddDate(0, 0, 10)))
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		ids = append(ids, id)
	}
	// The last added target is active.
	if err := svc.DeleteTarget(ctx, ids[2]); err != nil {
		t.Fatalf("delete active: %v", err)
	}
	active := svc.ActiveTarget()
	if active == nil || active.ID != ids[0] {
		t.Fatalf("active not reassigned to first remaining target")
	}

	// Deleting a non-active target leaves the pointer alone.
	if err := svc.DeleteTarget(ctx, ids[1]); err != nil {
		t.Fatalf("delete non-active: %v", err)
	}
	if active := svc.ActiveTarget(); active == nil || active.ID != ids[0] {
		t.Fatalf("active pointer moved on non-active delete")
	}

	// Deleting the last target clears the pointer.
	if err := svc.DeleteTarget(ctx, ids[0]); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if svc.ActiveTarget() != nil {
		t.Fatalf("active pointer should be nil with no targets")
	}
}

func TestSetActiveTargetStaleID(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.SetActiveTarget(ctx, "stale"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if svc.ActiveTarget() != nil {
		t.Fatalf("stale active id resolved to a target")
	}
}

func TestSortedTargetsStable(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	start := date(2025, time.May, 17)
	sameEnd := start.AddDate(0, 0, 10)
	laterEnd := start.AddDate(0, 0, 20)

	// Insertion order: late deadline first, then two sharing a deadline.
	if _, err := svc.AddTarget(ctx, testInput("late", start, laterEnd)); err != nil {
		t.Fatalf("add late: %v", err)
	}
	if _, err := svc.AddTarget(ctx, testInput("tie-1", start, sameEnd)); err != nil {
		t.Fatalf("add tie-1: %v", err)
	}
	if _, err := svc.AddTarget(ctx, testInput("tie-2", start, sameEnd)); err != nil {
		t.Fatalf("add tie-2: %v", err)
	}

	got := svc.SortedTargets()
	want := []string{"tie-1", "tie-2", "late"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("sorted[%d]=%q, want %q", i, got[i].Name, name)
		}
	}
}

func TestLogHoursRejectsNegative(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	start := date(2025, time.May, 17)
	id, err := svc.AddTarget(ctx, testInput("Exam", start, start.AddDate(0, 0, 16)))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.LogHours(ctx, id, -1, start); err == nil {
		t.Fatalf("expected validation error for negative hours")
	}
}

func TestLogHoursPersistsPenaltyReset(t *testing.T) {
	svc, db, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	today := date(2025, time.May, 27)
	start := today.AddDate(0, 0, -9)
	id, err := svc.AddTarget(ctx, testInput("Exam", start, start.AddDate(0, 0, 16)))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// One lone entry ten days in: logging today makes 2 of 10 expected
	// days, missing 8 with a buffer of 2.
	if _, err := svc.LogHours(ctx, id, 6, start); err != nil {
		t.Fatalf("log day 1: %v", err)
	}
	res, err := svc.LogHours(ctx, id, 6, today)
	if err != nil {
		t.Fatalf("log today: %v", err)
	}
	if !res.Applied {
		t.Fatalf("expected penalty (missed=%d buffer=%d)", res.MissedDays, res.BufferDays)
	}
	if got := len(svc.Target(id).ActivityLog); got != 0 {
		t.Fatalf("log not cleared after penalty: %d entries", got)
	}

	svc2, err := NewService(ctx, db)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(svc2.Target(id).ActivityLog); got != 0 {
		t.Fatalf("penalty reset not persisted: %d entries", got)
	}
}

func TestSummarize(t *testing.T) {
	start := date(2025, time.May, 17)
	tg := newTarget(start, start.AddDate(0, 0, 16), 2)
	tg.TargetDays = 13
	tg.PartialThreshold = 10

	for i := 0; i < 10; i++ {
		tg.ActivityLog = append(tg.ActivityLog, storage.DailyLog{Date: start.AddDate(0, 0, i), Hours: 6})
	}

	sum := Summarize(tg, start.AddDate(0, 0, 11))
	if sum.LoggedDays != 10 {
		t.Fatalf("loggedDays=%d, want 10", sum.LoggedDays)
	}
	if sum.TotalHours != 60 {
		t.Fatalf("totalHours=%v, want 60", sum.TotalHours)
	}
	if sum.ExpectedDays != 12 || sum.MissedDays != 2 {
		t.Fatalf("expected=%d missed=%d, want 12/2", sum.ExpectedDays, sum.MissedDays)
	}
	if sum.Standing != RewardPartial {
		t.Fatalf("standing=%q, want partial", sum.Standing)
	}

	for i := 10; i < 13; i++ {
		tg.ActivityLog = append(tg.ActivityLog, storage.DailyLog{Date: start.AddDate(0, 0, i), Hours: 6})
	}
	sum = Summarize(tg, start.AddDate(0, 0, 13))
	if sum.Standing != RewardFull {
		t.Fatalf("standing=%q, want full", sum.Standing)
	}
	if sum.Percent != 100 {
		t.Fatalf("percent=%v, want 100", sum.Percent)
	}
}
