package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
}

func sequentialIDs() func() (string, error) {
	counter := 0
	return func() (string, error) {
		counter++
		return fmt.Sprintf("id-%d", counter), nil
	}
}

func TestCreateTimerNormalizesAndSorts(t *testing.T) {
	input := CreateTimerInput{
		Name:        "  Workout  ",
		Description: " Morning routine ",
		Steps: []StepInput{
			{OrderIndex: 10, Title: "Work", DurationSeconds: 1200, Repetitions: 3, Notes: "High intensity"},
			{OrderIndex: 0, Title: " Warm up ", DurationSeconds: 300},
		},
	}

	timer, err := CreateTimer("owner-1", input, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}

	if timer.ID != "id-1" {
		t.Fatalf("expected id-1, got %q", timer.ID)
	}
	if timer.OwnerID != "owner-1" {
		t.Fatalf("expected owner-1, got %q", timer.OwnerID)
	}
	if timer.Name != "Workout" {
		t.Fatalf("expected trimmed name, got %q", timer.Name)
	}
	if timer.Description != "Morning routine" {
		t.Fatalf("expected trimmed description, got %q", timer.Description)
	}
	if len(timer.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(timer.Steps))
	}
	if timer.Steps[0].Title != "Warm up" || timer.Steps[1].Title != "Work" {
		t.Fatalf("expected canonical order by order index, got %q then %q", timer.Steps[0].Title, timer.Steps[1].Title)
	}
	if timer.Steps[0].Repetitions != 1 {
		t.Fatalf("expected default repetitions 1, got %d", timer.Steps[0].Repetitions)
	}
	if timer.Steps[1].OrderIndex != 10 {
		t.Fatalf("expected order index preserved without renumbering, got %d", timer.Steps[1].OrderIndex)
	}
	for _, step := range timer.Steps {
		if step.TimerID != timer.ID {
			t.Fatalf("expected step back-reference to timer, got %q", step.TimerID)
		}
	}
	if !timer.CreatedAt.Equal(fixedNow()) || !timer.UpdatedAt.Equal(fixedNow()) {
		t.Fatal("expected timestamps to match fixed time")
	}
}

func TestCreateTimerValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateTimerInput
		err   error
	}{
		{
			name:  "empty name",
			input: CreateTimerInput{Name: "   "},
			err:   ErrTimerNameEmpty,
		},
		{
			name: "empty step title",
			input: CreateTimerInput{
				Name:  "Workout",
				Steps: []StepInput{{OrderIndex: 0, Title: " ", DurationSeconds: 60}},
			},
			err: ErrStepTitleEmpty,
		},
		{
			name: "zero duration",
			input: CreateTimerInput{
				Name:  "Workout",
				Steps: []StepInput{{OrderIndex: 0, Title: "Work", DurationSeconds: 0}},
			},
			err: ErrStepInvalidDuration,
		},
		{
			name: "negative repetitions",
			input: CreateTimerInput{
				Name:  "Workout",
				Steps: []StepInput{{OrderIndex: 0, Title: "Work", DurationSeconds: 60, Repetitions: -1}},
			},
			err: ErrStepInvalidRepetitions,
		},
		{
			name: "negative order index",
			input: CreateTimerInput{
				Name:  "Workout",
				Steps: []StepInput{{OrderIndex: -1, Title: "Work", DurationSeconds: 60}},
			},
			err: ErrStepInvalidOrderIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTimer("owner-1", tt.input, fixedNow, sequentialIDs())
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestCreateTimerRejectsDuplicateOrderIndex(t *testing.T) {
	input := CreateTimerInput{
		Name: "Workout",
		Steps: []StepInput{
			{OrderIndex: 2, Title: "A", DurationSeconds: 30},
			{OrderIndex: 2, Title: "B", DurationSeconds: 45},
		},
	}
	_, err := CreateTimer("owner-1", input, fixedNow, sequentialIDs())
	if !errors.Is(err, stepOrderConflict(2)) {
		t.Fatalf("expected order conflict, got %v", err)
	}
}

func TestCreateTimerRequiresOwner(t *testing.T) {
	_, err := CreateTimer("  ", CreateTimerInput{Name: "Workout"}, fixedNow, sequentialIDs())
	if err == nil {
		t.Fatal("expected error for missing owner")
	}
}

func TestCreateTimerAcceptsSparseOrderIndexes(t *testing.T) {
	input := CreateTimerInput{
		Name: "Workout",
		Steps: []StepInput{
			{OrderIndex: 100, Title: "Late", DurationSeconds: 10},
			{OrderIndex: 7, Title: "Early", DurationSeconds: 10},
		},
	}
	timer, err := CreateTimer("owner-1", input, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}
	if timer.Steps[0].OrderIndex != 7 || timer.Steps[1].OrderIndex != 100 {
		t.Fatalf("expected sparse indexes preserved in sorted order, got %d and %d",
			timer.Steps[0].OrderIndex, timer.Steps[1].OrderIndex)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	timer, err := CreateTimer("owner-1", CreateTimerInput{Name: "Workout", Description: "Routine"}, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}

	later := func() time.Time { return fixedNow().Add(time.Hour) }
	newName := "Evening Workout"
	if err := timer.Update(UpdateTimerInput{Name: &newName}, later); err != nil {
		t.Fatalf("update: %v", err)
	}
	if timer.Name != "Evening Workout" {
		t.Fatalf("expected updated name, got %q", timer.Name)
	}
	if timer.Description != "Routine" {
		t.Fatalf("expected description untouched, got %q", timer.Description)
	}
	if !timer.UpdatedAt.Equal(later()) {
		t.Fatal("expected updated timestamp")
	}

	empty := "  "
	if err := timer.Update(UpdateTimerInput{Name: &empty}, later); !errors.Is(err, ErrTimerNameEmpty) {
		t.Fatalf("expected empty name rejection, got %v", err)
	}
}

func TestAddStepRejectsOrderCollision(t *testing.T) {
	timer, err := CreateTimer("owner-1", CreateTimerInput{
		Name:  "Workout",
		Steps: []StepInput{{OrderIndex: 0, Title: "Warm up", DurationSeconds: 300}},
	}, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}

	_, err = timer.AddStep(StepInput{OrderIndex: 0, Title: "Clash", DurationSeconds: 60}, fixedNow, sequentialIDs())
	if !errors.Is(err, stepOrderConflict(0)) {
		t.Fatalf("expected order conflict, got %v", err)
	}
}

func TestAddStepKeepsCanonicalOrder(t *testing.T) {
	timer, err := CreateTimer("owner-1", CreateTimerInput{
		Name:  "Workout",
		Steps: []StepInput{{OrderIndex: 5, Title: "Work", DurationSeconds: 600}},
	}, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}

	step, err := timer.AddStep(StepInput{OrderIndex: 1, Title: "Warm up", DurationSeconds: 120}, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("add step: %v", err)
	}
	if step.TimerID != timer.ID {
		t.Fatalf("expected step bound to timer, got %q", step.TimerID)
	}
	if timer.Steps[0].Title != "Warm up" {
		t.Fatalf("expected re-sorted steps, first is %q", timer.Steps[0].Title)
	}
}

func TestRemoveStepKeepsIndexes(t *testing.T) {
	timer, err := CreateTimer("owner-1", CreateTimerInput{
		Name: "Workout",
		Steps: []StepInput{
			{OrderIndex: 0, Title: "A", DurationSeconds: 10},
			{OrderIndex: 1, Title: "B", DurationSeconds: 20},
			{OrderIndex: 2, Title: "C", DurationSeconds: 30},
		},
	}, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}

	if err := timer.RemoveStep(timer.Steps[1].ID, fixedNow); err != nil {
		t.Fatalf("remove step: %v", err)
	}
	if len(timer.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(timer.Steps))
	}
	if timer.Steps[0].OrderIndex != 0 || timer.Steps[1].OrderIndex != 2 {
		t.Fatalf("expected surviving indexes 0 and 2 without renumbering, got %d and %d",
			timer.Steps[0].OrderIndex, timer.Steps[1].OrderIndex)
	}

	if err := timer.RemoveStep("missing", fixedNow); !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTotalDurationSeconds(t *testing.T) {
	timer, err := CreateTimer("owner-1", CreateTimerInput{
		Name: "Workout",
		Steps: []StepInput{
			{OrderIndex: 0, Title: "Warm up", DurationSeconds: 300},
			{OrderIndex: 1, Title: "Work", DurationSeconds: 1200, Repetitions: 3},
		},
	}, fixedNow, sequentialIDs())
	if err != nil {
		t.Fatalf("create timer: %v", err)
	}
	if got := timer.TotalDurationSeconds(); got != 300+3*1200 {
		t.Fatalf("total duration = %d, want %d", got, 300+3*1200)
	}
}

func TestNewIDShape(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(id) != 26 {
		t.Fatalf("expected 26 character id, got %d (%q)", len(id), id)
	}
	if id != strings.ToLower(id) {
		t.Fatalf("expected lowercase id, got %q", id)
	}
}
