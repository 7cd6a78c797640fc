package storage

import "time"

// Document is the full persisted state: every target plus the pointer to
// the one currently selected for display/interaction. It is stored as a
// single JSON blob and overwritten whole on every mutation.
type Document struct {
	Targets        []Target `json:"targets"`
	ActiveTargetID *string  `json:"activeTargetId"`
}

// Target is a time-boxed commitment with a daily effort requirement and a
// reset-on-miss penalty policy.
type Target struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	RewardItem       string     `json:"rewardItem"`
	RewardCost       float64    `json:"rewardCost"`
	DailyTarget      float64    `json:"dailyTarget"`
	TargetDays       int        `json:"targetDays"`
	BufferDays       int        `json:"bufferDays"`
	PartialThreshold float64    `json:"partialThreshold"`
	PartialReward    float64    `json:"partialReward"`
	TotalDays        int        `json:"totalDays"`
	ActivityLog      []DailyLog `json:"activityLog"`
	ExamCompleted    bool       `json:"examCompleted"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// DailyLog records one day's effort. Dates are truncated to local
// midnight; a target holds at most one entry per calendar date.
type DailyLog struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
}
