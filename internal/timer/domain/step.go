package domain

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
)

var (
	// ErrStepTitleEmpty indicates a missing step title.
	ErrStepTitleEmpty = apperrors.New(apperrors.CodeStepTitleEmpty, "step title is required")
	// ErrStepInvalidDuration indicates a non-positive step duration.
	ErrStepInvalidDuration = apperrors.New(apperrors.CodeStepInvalidDuration, "step duration must be at least one second")
	// ErrStepInvalidRepetitions indicates a negative repetition count.
	ErrStepInvalidRepetitions = apperrors.New(apperrors.CodeStepInvalidRepetitions, "step repetitions must be at least one")
	// ErrStepInvalidOrderIndex indicates a negative order index.
	ErrStepInvalidOrderIndex = apperrors.New(apperrors.CodeStepInvalidOrderIndex, "step order index must be zero or greater")
	// ErrStepNotFound indicates a step id that does not belong to the timer.
	ErrStepNotFound = apperrors.New(apperrors.CodeStepNotFound, "step not found on timer")
)

// Step is one interval within a timer. OrderIndex is an opaque sort key:
// values need not be dense or zero-based, only unique within the timer.
type Step struct {
	ID              string
	TimerID         string
	OrderIndex      int
	Title           string
	DurationSeconds int
	Repetitions     int
	Notes           string
}

// StepInput describes the data needed to add a step to a timer.
type StepInput struct {
	OrderIndex      int
	Title           string
	DurationSeconds int
	Repetitions     int // zero means unset and defaults to 1
	Notes           string
}

// NormalizeStepInput trims and validates step input data.
func NormalizeStepInput(input StepInput) (StepInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Notes = strings.TrimSpace(input.Notes)
	if input.Title == "" {
		return StepInput{}, ErrStepTitleEmpty
	}
	if input.DurationSeconds < 1 {
		return StepInput{}, ErrStepInvalidDuration
	}
	if input.Repetitions == 0 {
		input.Repetitions = 1
	}
	if input.Repetitions < 1 {
		return StepInput{}, ErrStepInvalidRepetitions
	}
	if input.OrderIndex < 0 {
		return StepInput{}, ErrStepInvalidOrderIndex
	}
	return input, nil
}

func stepOrderConflict(orderIndex int) *apperrors.Error {
	return apperrors.WithMetadata(
		apperrors.CodeStepOrderConflict,
		"step order index "+strconv.Itoa(orderIndex)+" already in use",
		map[string]string{"OrderIndex": strconv.Itoa(orderIndex)},
	)
}
