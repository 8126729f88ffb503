// Package importer reconstructs timers from batches of flat rows.
//
// Rows belonging to several timers may arrive interleaved. The engine groups
// them, validates each candidate timer, and reports every failure alongside
// the timers that did import. One bad row or one bad group never aborts the
// rest of the batch.
package importer

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	"github.com/louisbranch/tempo/internal/timer/domain"
	"github.com/louisbranch/tempo/internal/timer/rowcodec"
)

const defaultConcurrency = 4

// RowError reports a single row that could not be decoded. Position is the
// 1-based index of the row in the submitted batch.
type RowError struct {
	Position int
	Err      error
}

// GroupError reports a candidate timer that was rejected as a whole, either
// for duplicate step orders or for a domain validation failure.
type GroupError struct {
	Key rowcodec.GroupKey
	Err error
}

// Result is the outcome of one batch. A batch with zero created timers and
// only errors is a valid result, not a failure of the engine itself.
type Result struct {
	Created     []domain.Timer
	RowErrors   []RowError
	GroupErrors []GroupError
}

// Engine builds timers from raw row batches.
type Engine struct {
	now         func() time.Time
	idGenerator func() (string, error)
	concurrency int
}

// New returns an engine. The now and idGenerator functions follow the domain
// constructor defaults when nil.
func New(now func() time.Time, idGenerator func() (string, error)) *Engine {
	return &Engine{
		now:         now,
		idGenerator: idGenerator,
		concurrency: defaultConcurrency,
	}
}

type group struct {
	key   rowcodec.GroupKey
	steps []domain.StepInput
}

// Run imports a batch of records for the given owner. Groups are formed by
// (name, description) in first-seen order; rows inside a group keep their
// input order until the domain sorts steps canonically. Every created timer
// is owned by ownerID no matter what the rows contained.
func (e *Engine) Run(ctx context.Context, ownerID string, records []rowcodec.Record) Result {
	var result Result

	byKey := make(map[rowcodec.GroupKey]*group)
	var groups []*group
	for i, record := range records {
		if ctx.Err() != nil {
			break
		}
		key, step, err := rowcodec.DecodeRecord(record)
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{
				Position: i + 1,
				Err:      rowError(i+1, err),
			})
			continue
		}
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.steps = append(g.steps, step)
	}

	timers := make([]*domain.Timer, len(groups))
	groupErrs := make([]error, len(groups))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.concurrency)
	for i, g := range groups {
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return nil
			}
			timer, err := e.buildTimer(ownerID, g)
			if err != nil {
				groupErrs[i] = err
				return nil
			}
			timers[i] = &timer
			return nil
		})
	}
	_ = eg.Wait()

	for i, g := range groups {
		if groupErrs[i] != nil {
			result.GroupErrors = append(result.GroupErrors, GroupError{Key: g.key, Err: groupErrs[i]})
			continue
		}
		if timers[i] != nil {
			result.Created = append(result.Created, *timers[i])
		}
	}
	return result
}

// buildTimer validates one group and constructs its timer. Order collisions
// are only detectable once the group is complete, so they are checked here
// rather than per row.
func (e *Engine) buildTimer(ownerID string, g *group) (domain.Timer, error) {
	seen := make(map[int]bool, len(g.steps))
	for _, step := range g.steps {
		if seen[step.OrderIndex] {
			return domain.Timer{}, groupInvalid(g.key, "duplicate step order in timer")
		}
		seen[step.OrderIndex] = true
	}

	timer, err := domain.CreateTimer(ownerID, domain.CreateTimerInput{
		Name:        g.key.Name,
		Description: g.key.Description,
		Steps:       g.steps,
	}, e.now, e.idGenerator)
	if err != nil {
		return domain.Timer{}, apperrors.WrapWithMetadata(
			apperrors.CodeImportGroupInvalid, "timer could not be imported",
			map[string]string{"TimerName": g.key.Name, "Reason": err.Error()}, err)
	}
	return timer, nil
}

// rowError tags a decode failure with the row's 1-based batch position.
func rowError(position int, cause error) error {
	reason := apperrors.GetMetadata(cause)["Reason"]
	if reason == "" {
		reason = cause.Error()
	}
	return apperrors.WrapWithMetadata(apperrors.CodeImportRowMalformed, "row could not be read",
		map[string]string{
			"Position": strconv.Itoa(position),
			"Reason":   reason,
		}, cause)
}

func groupInvalid(key rowcodec.GroupKey, reason string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeImportGroupInvalid, reason,
		map[string]string{"TimerName": key.Name, "Reason": reason})
}
