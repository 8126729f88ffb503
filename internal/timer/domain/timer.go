// Package domain defines timers and their ordered steps.
//
// A timer owns its steps exclusively: steps are added and removed only
// through the timer's operations and have no independent lifecycle. The
// canonical step order is ascending by OrderIndex, never insertion order.
package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
)

// ErrTimerNameEmpty indicates a missing timer name.
var ErrTimerNameEmpty = apperrors.New(apperrors.CodeTimerNameEmpty, "timer name is required")

// Timer is a named, owned collection of ordered steps.
type Timer struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Steps       []Step
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTimerInput describes the data needed to create a timer.
type CreateTimerInput struct {
	Name        string
	Description string
	Steps       []StepInput
}

// UpdateTimerInput describes a partial update of timer metadata.
// Nil fields are left untouched; owner and id never change.
type UpdateTimerInput struct {
	Name        *string
	Description *string
}

// CreateTimer creates a timer with generated ids and timestamps. Supplied
// steps are validated and stored in canonical order; their OrderIndex values
// must be unique but are otherwise kept verbatim, gaps included.
func CreateTimer(ownerID string, input CreateTimerInput, now func() time.Time, idGenerator func() (string, error)) (Timer, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Timer{}, fmt.Errorf("owner id is required")
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return Timer{}, ErrTimerNameEmpty
	}

	timerID, err := idGenerator()
	if err != nil {
		return Timer{}, fmt.Errorf("generate timer id: %w", err)
	}

	steps := make([]Step, 0, len(input.Steps))
	seen := make(map[int]struct{}, len(input.Steps))
	for _, stepInput := range input.Steps {
		normalized, err := NormalizeStepInput(stepInput)
		if err != nil {
			return Timer{}, err
		}
		if _, dup := seen[normalized.OrderIndex]; dup {
			return Timer{}, stepOrderConflict(normalized.OrderIndex)
		}
		seen[normalized.OrderIndex] = struct{}{}

		stepID, err := idGenerator()
		if err != nil {
			return Timer{}, fmt.Errorf("generate step id: %w", err)
		}
		steps = append(steps, Step{
			ID:              stepID,
			TimerID:         timerID,
			OrderIndex:      normalized.OrderIndex,
			Title:           normalized.Title,
			DurationSeconds: normalized.DurationSeconds,
			Repetitions:     normalized.Repetitions,
			Notes:           normalized.Notes,
		})
	}
	sortSteps(steps)

	createdAt := now().UTC()
	return Timer{
		ID:          timerID,
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Steps:       steps,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// Update applies a partial metadata update. A nil field keeps the current
// value; a present empty name is rejected.
func (t *Timer) Update(input UpdateTimerInput, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return ErrTimerNameEmpty
		}
		t.Name = name
	}
	if input.Description != nil {
		t.Description = strings.TrimSpace(*input.Description)
	}
	t.UpdatedAt = now().UTC()
	return nil
}

// AddStep validates and appends one step, keeping canonical order. The new
// step's OrderIndex must not collide with an existing step.
func (t *Timer) AddStep(input StepInput, now func() time.Time, idGenerator func() (string, error)) (Step, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	normalized, err := NormalizeStepInput(input)
	if err != nil {
		return Step{}, err
	}
	for _, existing := range t.Steps {
		if existing.OrderIndex == normalized.OrderIndex {
			return Step{}, stepOrderConflict(normalized.OrderIndex)
		}
	}

	stepID, err := idGenerator()
	if err != nil {
		return Step{}, fmt.Errorf("generate step id: %w", err)
	}
	step := Step{
		ID:              stepID,
		TimerID:         t.ID,
		OrderIndex:      normalized.OrderIndex,
		Title:           normalized.Title,
		DurationSeconds: normalized.DurationSeconds,
		Repetitions:     normalized.Repetitions,
		Notes:           normalized.Notes,
	}
	t.Steps = append(t.Steps, step)
	sortSteps(t.Steps)
	t.UpdatedAt = now().UTC()
	return step, nil
}

// RemoveStep removes the step with the given id. Remaining steps keep their
// OrderIndex values; gaps are permitted and carry no meaning beyond relative
// order.
func (t *Timer) RemoveStep(stepID string, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}
	for i, step := range t.Steps {
		if step.ID == stepID {
			t.Steps = append(t.Steps[:i], t.Steps[i+1:]...)
			t.UpdatedAt = now().UTC()
			return nil
		}
	}
	return ErrStepNotFound
}

// TotalDurationSeconds returns the timer's full runtime: the sum of each
// step's duration times its repetitions.
func (t *Timer) TotalDurationSeconds() int {
	total := 0
	for _, step := range t.Steps {
		total += step.DurationSeconds * step.Repetitions
	}
	return total
}

func sortSteps(steps []Step) {
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].OrderIndex < steps[j].OrderIndex
	})
}
