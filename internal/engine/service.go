package engine

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pnkjpro/oathly/internal/storage"
)

// Service owns the target collection and the active-target pointer. Every
// mutating call applies to the in-memory document first and then persists
// the whole document through the store.
//
// Operations addressed by id silently no-op when the id does not resolve:
// ids originate from rendered lists, so a stale id just means "nothing to
// do".
type Service struct {
	store *storage.DocStore
	doc   *storage.Document
}

// NewService loads the persisted document and wraps it.
func NewService(ctx context.Context, db *sql.DB) (*Service, error) {
	store := storage.NewDocStore(db)
	doc, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Service{store: store, doc: doc}, nil
}

// TargetInput carries the editable fields of a target. The activity log,
// completion flag, id and creation timestamp are never set through it.
type TargetInput struct {
	Name             string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	RewardItem       string
	RewardCost       float64
	DailyTarget      float64
	TargetDays       int
	BufferDays       int
	PartialThreshold float64
	PartialReward    float64
}

func validateInput(in TargetInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if in.StartDate.IsZero() {
		return ValidationError{Field: "startDate", Reason: "required"}
	}
	if in.EndDate.IsZero() {
		return ValidationError{Field: "endDate", Reason: "required"}
	}
	if in.DailyTarget <= 0 {
		return ValidationError{Field: "dailyTarget", Reason: "must be positive"}
	}
	if in.TargetDays <= 0 {
		return ValidationError{Field: "targetDays", Reason: "must be positive"}
	}
	if in.BufferDays < 0 {
		return ValidationError{Field: "bufferDays", Reason: "must not be negative"}
	}
	if in.RewardCost < 0 {
		return ValidationError{Field: "rewardCost", Reason: "must not be negative"}
	}
	if in.PartialReward < 0 {
		return ValidationError{Field: "partialReward", Reason: "must not be negative"}
	}
	return nil
}

func applyInput(t *storage.Target, in TargetInput) {
	t.Name = strings.TrimSpace(in.Name)
	t.Description = in.Description
	t.StartDate = Midnight(in.StartDate)
	t.EndDate = Midnight(in.EndDate)
	t.RewardItem = in.RewardItem
	t.RewardCost = in.RewardCost
	t.DailyTarget = in.DailyTarget
	t.TargetDays = in.TargetDays
	t.BufferDays = in.BufferDays
	t.PartialThreshold = in.PartialThreshold
	t.PartialReward = in.PartialReward
	t.TotalDays = TotalDays(t.StartDate, t.EndDate)
}

// AddTarget creates a target from the input, makes it active and returns
// its id.
func (s *Service) AddTarget(ctx context.Context, in TargetInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}

	t := storage.Target{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	applyInput(&t, in)

	s.doc.Targets = append(s.doc.Targets, t)
	id := t.ID
	s.doc.ActiveTargetID = &id
	if err := s.save(ctx); err != nil {
		return "", err
	}
	return t.ID, nil
}

// UpdateTarget overwrites the editable fields of the target, preserving
// its activity log, completion flag, id and creation timestamp.
func (s *Service) UpdateTarget(ctx context.Context, id string, in TargetInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	t := s.find(id)
	if t == nil {
		return nil
	}
	applyInput(t, in)
	return s.save(ctx)
}

// DeleteTarget removes the target. When the active target is deleted, the
// first remaining target becomes active, or the pointer clears if none
// remain.
func (s *Service) DeleteTarget(ctx context.Context, id string) error {
	idx := -1
	for i := range s.doc.Targets {
		if s.doc.Targets[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	s.doc.Targets = append(s.doc.Targets[:idx], s.doc.Targets[idx+1:]...)

	if s.doc.ActiveTargetID != nil && *s.doc.ActiveTargetID == id {
		if len(s.doc.Targets) > 0 {
			first := s.doc.Targets[0].ID
			s.doc.ActiveTargetID = &first
		} else {
			s.doc.ActiveTargetID = nil
		}
	}
	return s.save(ctx)
}

// SetActiveTarget points the active selection at id. Existence is not
// validated; a stale id makes ActiveTarget resolve to nil.
func (s *Service) SetActiveTarget(ctx context.Context, id string) error {
	s.doc.ActiveTargetID = &id
	return s.save(ctx)
}

// ActiveTarget resolves the active pointer, or nil.
func (s *Service) ActiveTarget() *storage.Target {
	if s.doc.ActiveTargetID == nil {
		return nil
	}
	return s.find(*s.doc.ActiveTargetID)
}

// Target returns the target with the given id, or nil.
func (s *Service) Target(id string) *storage.Target {
	return s.find(id)
}

// SortedTargets returns all targets ordered by end date, soonest first.
// Targets sharing an end date keep their insertion order.
func (s *Service) SortedTargets() []storage.Target {
	out := make([]storage.Target, len(s.doc.Targets))
	copy(out, s.doc.Targets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndDate.Before(out[j].EndDate)
	})
	return out
}

// LogHours records today's effort against the target and returns the
// penalty evaluation. A nil result means the id did not resolve.
func (s *Service) LogHours(ctx context.Context, id string, hours float64, today time.Time) (*PenaltyResult, error) {
	if hours < 0 {
		return nil, ValidationError{Field: "hours", Reason: "must not be negative"}
	}
	t := s.find(id)
	if t == nil {
		return nil, nil
	}
	res := LogHours(t, hours, today)
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return &res, nil
}

// RemoveTodayLog deletes today's entry for the target, if any.
func (s *Service) RemoveTodayLog(ctx context.Context, id string, today time.Time) error {
	t := s.find(id)
	if t == nil {
		return nil
	}
	RemoveTodayLog(t, today)
	return s.save(ctx)
}

// CompleteExam marks the target's exam as taken.
func (s *Service) CompleteExam(ctx context.Context, id string) error {
	t := s.find(id)
	if t == nil {
		return nil
	}
	CompleteExam(t)
	return s.save(ctx)
}

// ResetProgress clears the target's log and completion flag.
func (s *Service) ResetProgress(ctx context.Context, id string) error {
	t := s.find(id)
	if t == nil {
		return nil
	}
	ResetProgress(t)
	return s.save(ctx)
}

// CheckPenalty evaluates the penalty rule for the target. A nil result
// means the id did not resolve.
func (s *Service) CheckPenalty(ctx context.Context, id string, today time.Time) (*PenaltyResult, error) {
	t := s.find(id)
	if t == nil {
		return nil, nil
	}
	res := CheckPenalty(t, today)
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Service) find(id string) *storage.Target {
	for i := range s.doc.Targets {
		if s.doc.Targets[i].ID == id {
			return &s.doc.Targets[i]
		}
	}
	return nil
}

func (s *Service) save(ctx context.Context) error {
	return s.store.Save(ctx, s.doc)
}
