package engine

import (
	"time"

	"github.com/pnkjpro/oathly/internal/storage"
)

// RewardStanding describes which reward tier the logged effort has earned
// so far. The threshold fields are stored on the target and interpreted
// here as day counts.
type RewardStanding string

const (
	RewardNone    RewardStanding = "none"
	RewardPartial RewardStanding = "partial"
	RewardFull    RewardStanding = "full"
)

// Summary is the derived view of a target's progress as of a given day.
type Summary struct {
	LoggedDays    int
	TotalHours    float64
	ExpectedDays  int
	MissedDays    int
	RemainingDays int
	Percent       float64
	Standing      RewardStanding
}

// Summarize computes the presentation numbers for a target without
// mutating it. The penalty rule itself is CheckPenalty's job; the
// expected/missed figures here use the same clamped arithmetic.
func Summarize(t *storage.Target, today time.Time) Summary {
	today = Midnight(today)

	expected := DaysBetween(Midnight(t.StartDate), today) + 1
	if expected > t.TotalDays {
		expected = t.TotalDays
	}
	if expected < 0 {
		expected = 0
	}

	var hours float64
	for _, log := range t.ActivityLog {
		hours += log.Hours
	}
	logged := len(t.ActivityLog)

	missed := expected - logged
	if missed < 0 {
		missed = 0
	}

	remaining := DaysBetween(today, Midnight(t.EndDate)) + 1
	if remaining < 0 {
		remaining = 0
	}
	if remaining > t.TotalDays {
		remaining = t.TotalDays
	}

	var pct float64
	if t.TargetDays > 0 {
		pct = float64(logged) / float64(t.TargetDays) * 100
		if pct > 100 {
			pct = 100
		}
	}

	standing := RewardNone
	switch {
	case logged >= t.TargetDays:
		standing = RewardFull
	case float64(logged) >= t.PartialThreshold:
		standing = RewardPartial
	}

	return Summary{
		LoggedDays:    logged,
		TotalHours:    hours,
		ExpectedDays:  expected,
		MissedDays:    missed,
		RemainingDays: remaining,
		Percent:       pct,
		Standing:      standing,
	}
}
