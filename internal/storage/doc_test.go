package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DocStore {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewDocStore(db)
}

func TestLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Targets) != 0 || doc.ActiveTargetID != nil {
		t.Fatalf("fresh store not empty: %+v", doc)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2025, time.May, 17, 0, 0, 0, 0, time.Local)
	id := "abc-123"
	doc := &Document{
		Targets: []Target{{
			ID:          id,
			Name:        "Exam Prep",
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 16),
			DailyTarget: 6,
			TargetDays:  13,
			BufferDays:  2,
			TotalDays:   17,
			ActivityLog: []DailyLog{{Date: start, Hours: 6.5}},
			CreatedAt:   time.Now().UTC(),
		}},
		ActiveTargetID: &id,
	}

	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Targets) != 1 {
		t.Fatalf("loaded %d targets, want 1", len(got.Targets))
	}
	tg := got.Targets[0]
	if tg.ID != id || tg.Name != "Exam Prep" || tg.TotalDays != 17 {
		t.Fatalf("loaded target mismatch: %+v", tg)
	}
	if len(tg.ActivityLog) != 1 || tg.ActivityLog[0].Hours != 6.5 {
		t.Fatalf("activity log mismatch: %+v", tg.ActivityLog)
	}
	if !tg.ActivityLog[0].Date.Equal(start) {
		t.Fatalf("log date mismatch: %v vs %v", tg.ActivityLog[0].Date, start)
	}
	if got.ActiveTargetID == nil || *got.ActiveTargetID != id {
		t.Fatalf("active pointer mismatch: %v", got.ActiveTargetID)
	}
}

func TestSaveOverwritesWholeDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := "one"
	if err := store.Save(ctx, &Document{Targets: []Target{{ID: id, Name: "first"}}, ActiveTargetID: &id}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, &Document{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Targets) != 0 || got.ActiveTargetID != nil {
		t.Fatalf("old document leaked through overwrite: %+v", got)
	}
}

// The persisted field names are the document's wire contract; renaming a
// struct field must not silently rename the stored key.
func TestPersistedFieldNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := "abc"
	doc := &Document{
		Targets:        []Target{{ID: id, Name: "n", ActivityLog: []DailyLog{{Date: time.Now(), Hours: 1}}}},
		ActiveTargetID: &id,
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	row := store.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, DocumentKey)
	var raw string
	if err := row.Scan(&raw); err != nil {
		t.Fatalf("read raw: %v", err)
	}
	for _, key := range []string{
		`"targets"`, `"activeTargetId"`, `"activityLog"`, `"examCompleted"`,
		`"startDate"`, `"endDate"`, `"dailyTarget"`, `"targetDays"`,
		`"bufferDays"`, `"partialThreshold"`, `"partialReward"`,
		`"rewardItem"`, `"rewardCost"`, `"totalDays"`, `"createdAt"`,
		`"date"`, `"hours"`,
	} {
		if !strings.Contains(raw, key) {
			t.Fatalf("stored document missing field %s: %s", key, raw)
		}
	}
}
