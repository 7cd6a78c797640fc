package engine

import (
	"context"
	"time"
)

// Seed creates the example target on first run: a two-week exam window
// starting today. It is skipped whenever any target already exists, so
// running it on every startup is safe.
func (s *Service) Seed(ctx context.Context, today time.Time) error {
	if len(s.doc.Targets) > 0 {
		return nil
	}
	start := Midnight(today)
	_, err := s.AddTarget(ctx, TargetInput{
		Name:             "Exam Prep",
		Description:      "Preparation for the upcoming exam",
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, 13),
		RewardItem:       "New earbuds",
		RewardCost:       6000,
		DailyTarget:      6,
		TargetDays:       13,
		BufferDays:       2,
		PartialThreshold: 10,
		PartialReward:    3000,
	})
	return err
}
