package engine

import (
	"time"

	"github.com/pnkjpro/oathly/internal/storage"
)

// Midnight truncates t to midnight in its own location. All log dates and
// "today" parameters pass through here before any day arithmetic.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// utcDay maps a time to its calendar date at UTC midnight, so day counts
// are exact 24h multiples even when a DST shift falls inside the span.
func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day count from a to b on midnight-truncated
// dates. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(utcDay(b).Sub(utcDay(a)) / (24 * time.Hour))
}

// TotalDays is the inclusive day count of the [start, end] window.
// Non-positive when end precedes start; that degenerate case is the
// caller's to avoid.
func TotalDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

func sameDay(a, b time.Time) bool {
	return utcDay(a).Equal(utcDay(b))
}

// PenaltyResult reports one evaluation of the penalty rule.
type PenaltyResult struct {
	Applied      bool
	ExpectedDays int
	MissedDays   int
	BufferDays   int
}

// LogHours records today's effort on the target: if an entry for today
// already exists its hours are overwritten, otherwise a new entry is
// appended. The penalty rule runs after every log.
func LogHours(t *storage.Target, hours float64, today time.Time) PenaltyResult {
	today = Midnight(today)
	updated := false
	for i := range t.ActivityLog {
		if sameDay(t.ActivityLog[i].Date, today) {
			t.ActivityLog[i].Hours = hours
			updated = true
			break
		}
	}
	if !updated {
		t.ActivityLog = append(t.ActivityLog, storage.DailyLog{Date: today, Hours: hours})
	}
	return CheckPenalty(t, today)
}

// RemoveTodayLog deletes today's entry if present. Removal never triggers
// a penalty check.
func RemoveTodayLog(t *storage.Target, today time.Time) {
	today = Midnight(today)
	kept := t.ActivityLog[:0]
	for _, log := range t.ActivityLog {
		if !sameDay(log.Date, today) {
			kept = append(kept, log)
		}
	}
	t.ActivityLog = kept
}

// CompleteExam marks the target's exam as taken. Idempotent; only
// ResetProgress transitions the flag back.
func CompleteExam(t *storage.Target) {
	t.ExamCompleted = true
}

// ResetProgress clears the activity log and the completion flag. Used for
// manual resets and as the penalty consequence.
func ResetProgress(t *storage.Target) {
	t.ActivityLog = nil
	t.ExamCompleted = false
}

// CheckPenalty evaluates the reset-on-miss rule: the user should have one
// entry for every day from the start date through today, capped at the
// target's total window so an elapsed target stops accruing expectation.
// When the shortfall exceeds the buffer, all progress is reset.
//
// If today precedes the start date, expectedDays is zero or negative and
// the penalty can never fire.
func CheckPenalty(t *storage.Target, today time.Time) PenaltyResult {
	today = Midnight(today)

	expected := DaysBetween(Midnight(t.StartDate), today) + 1
	if expected > t.TotalDays {
		expected = t.TotalDays
	}
	missed := expected - len(t.ActivityLog)

	res := PenaltyResult{
		ExpectedDays: expected,
		MissedDays:   missed,
		BufferDays:   t.BufferDays,
	}
	if missed > t.BufferDays {
		ResetProgress(t)
		res.Applied = true
	}
	return res
}
