// Package storage defines persistence contracts for timer state.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/tempo/internal/timer/domain"
)

var (
	// ErrNotFound indicates a requested timer is missing or not owned by the
	// caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")
)

// ListQuery narrows and pages a timer listing. Where is an optional SQL
// condition over timer columns with positional Params.
type ListQuery struct {
	Where  string
	Params []any
	Limit  int
	Offset int
}

// TimerStore persists timers together with their steps. A timer and its
// steps are written atomically; a partially stored timer is never visible.
type TimerStore interface {
	// CreateTimer inserts a timer and all of its steps in one transaction.
	CreateTimer(ctx context.Context, timer domain.Timer) error
	// GetTimer loads one timer with steps in canonical order.
	GetTimer(ctx context.Context, ownerID, timerID string) (domain.Timer, error)
	// ListTimers returns the owner's timers, newest first, with steps.
	ListTimers(ctx context.Context, ownerID string, query ListQuery) ([]domain.Timer, error)
	// SaveTimer replaces a stored timer's metadata and step set atomically.
	SaveTimer(ctx context.Context, timer domain.Timer) error
	// DeleteTimer removes a timer and, through it, all of its steps.
	DeleteTimer(ctx context.Context, ownerID, timerID string) error
}
