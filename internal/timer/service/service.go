// Package service exposes timer operations under an authenticated owner
// identity. It is the only surface the transport layers talk to: ownership
// scoping, pagination, filtering, and import orchestration all live here.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/tempo/internal/platform/cursor"
	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	"github.com/louisbranch/tempo/internal/platform/pagination"
	"github.com/louisbranch/tempo/internal/timer/domain"
	"github.com/louisbranch/tempo/internal/timer/filter"
	"github.com/louisbranch/tempo/internal/timer/importer"
	"github.com/louisbranch/tempo/internal/timer/rowcodec"
	"github.com/louisbranch/tempo/internal/timer/storage"
)

const tracerName = "github.com/louisbranch/tempo/internal/timer/service"

var defaultPageSizes = pagination.PageSizeConfig{Default: 20, Max: 100}

// Service coordinates timer operations for authenticated owners.
type Service struct {
	store       storage.TimerStore
	engine      *importer.Engine
	tracer      trace.Tracer
	now         func() time.Time
	idGenerator func() (string, error)
	pageSizes   pagination.PageSizeConfig
}

// Config carries Service dependencies. Store is required; the rest default.
type Config struct {
	Store       storage.TimerStore
	Now         func() time.Time
	IDGenerator func() (string, error)
	PageSizes   pagination.PageSizeConfig
}

// New creates a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("timer store is required")
	}
	pageSizes := cfg.PageSizes
	if pageSizes.Default <= 0 {
		pageSizes = defaultPageSizes
	}
	return &Service{
		store:       cfg.Store,
		engine:      importer.New(cfg.Now, cfg.IDGenerator),
		tracer:      otel.Tracer(tracerName),
		now:         cfg.Now,
		idGenerator: cfg.IDGenerator,
		pageSizes:   pageSizes,
	}, nil
}

// ListTimersRequest narrows and pages a timer listing.
type ListTimersRequest struct {
	Filter    string
	PageSize  int
	PageToken string
}

// ListTimersResult is one page of an owner's timers.
type ListTimersResult struct {
	Timers        []domain.Timer
	NextPageToken string
}

// ListTimers returns one page of the owner's timers, newest first. The page
// token is opaque and bound to the filter it was issued for.
func (s *Service) ListTimers(ctx context.Context, ownerID string, req ListTimersRequest) (ListTimersResult, error) {
	ctx, span := s.tracer.Start(ctx, "timer.list")
	defer span.End()

	cond, err := filter.ParseTimerFilter(req.Filter)
	if err != nil {
		return ListTimersResult{}, err
	}

	var offset uint64
	if req.PageToken != "" {
		c, err := cursor.Decode(req.PageToken)
		if err != nil {
			return ListTimersResult{}, apperrors.Wrap(apperrors.CodePageTokenInvalid,
				"invalid page token", err)
		}
		if err := cursor.ValidateFilterHash(c, req.Filter); err != nil {
			return ListTimersResult{}, apperrors.Wrap(apperrors.CodePageTokenInvalid,
				"page token does not match the filter", err)
		}
		offset = c.Offset
	}

	pageSize := pagination.ClampPageSize(req.PageSize, s.pageSizes)
	span.SetAttributes(attribute.Int("page_size", pageSize))

	timers, err := s.store.ListTimers(ctx, ownerID, storage.ListQuery{
		Where:  cond.Clause,
		Params: cond.Params,
		Limit:  pageSize + 1, // one extra row detects a next page
		Offset: int(offset),
	})
	if err != nil {
		return ListTimersResult{}, fmt.Errorf("list timers: %w", err)
	}

	result := ListTimersResult{Timers: timers}
	if len(timers) > pageSize {
		result.Timers = timers[:pageSize]
		token, err := cursor.Encode(cursor.New(offset+uint64(pageSize), req.Filter))
		if err != nil {
			return ListTimersResult{}, fmt.Errorf("encode page token: %w", err)
		}
		result.NextPageToken = token
	}
	return result, nil
}

// GetTimer loads one timer owned by the caller.
func (s *Service) GetTimer(ctx context.Context, ownerID, timerID string) (domain.Timer, error) {
	ctx, span := s.tracer.Start(ctx, "timer.get")
	defer span.End()

	timer, err := s.store.GetTimer(ctx, ownerID, timerID)
	if err != nil {
		return domain.Timer{}, mapStorageError(err)
	}
	return timer, nil
}

// CreateTimer validates and persists a new timer for the caller.
func (s *Service) CreateTimer(ctx context.Context, ownerID string, input domain.CreateTimerInput) (domain.Timer, error) {
	ctx, span := s.tracer.Start(ctx, "timer.create")
	defer span.End()

	timer, err := domain.CreateTimer(ownerID, input, s.now, s.idGenerator)
	if err != nil {
		return domain.Timer{}, err
	}
	if err := s.store.CreateTimer(ctx, timer); err != nil {
		return domain.Timer{}, fmt.Errorf("store timer: %w", err)
	}
	return timer, nil
}

// UpdateTimer applies a partial metadata update to an owned timer.
func (s *Service) UpdateTimer(ctx context.Context, ownerID, timerID string, input domain.UpdateTimerInput) (domain.Timer, error) {
	ctx, span := s.tracer.Start(ctx, "timer.update")
	defer span.End()

	timer, err := s.store.GetTimer(ctx, ownerID, timerID)
	if err != nil {
		return domain.Timer{}, mapStorageError(err)
	}
	if err := timer.Update(input, s.now); err != nil {
		return domain.Timer{}, err
	}
	if err := s.store.SaveTimer(ctx, timer); err != nil {
		return domain.Timer{}, mapStorageError(err)
	}
	return timer, nil
}

// DeleteTimer removes an owned timer and all of its steps.
func (s *Service) DeleteTimer(ctx context.Context, ownerID, timerID string) error {
	ctx, span := s.tracer.Start(ctx, "timer.delete")
	defer span.End()

	if err := s.store.DeleteTimer(ctx, ownerID, timerID); err != nil {
		return mapStorageError(err)
	}
	return nil
}

// AddStep appends a step to an owned timer.
func (s *Service) AddStep(ctx context.Context, ownerID, timerID string, input domain.StepInput) (domain.Step, error) {
	ctx, span := s.tracer.Start(ctx, "timer.add_step")
	defer span.End()

	timer, err := s.store.GetTimer(ctx, ownerID, timerID)
	if err != nil {
		return domain.Step{}, mapStorageError(err)
	}
	step, err := timer.AddStep(input, s.now, s.idGenerator)
	if err != nil {
		return domain.Step{}, err
	}
	if err := s.store.SaveTimer(ctx, timer); err != nil {
		return domain.Step{}, mapStorageError(err)
	}
	return step, nil
}

// RemoveStep removes a step from an owned timer. Remaining steps keep their
// order index values.
func (s *Service) RemoveStep(ctx context.Context, ownerID, timerID, stepID string) error {
	ctx, span := s.tracer.Start(ctx, "timer.remove_step")
	defer span.End()

	timer, err := s.store.GetTimer(ctx, ownerID, timerID)
	if err != nil {
		return mapStorageError(err)
	}
	if err := timer.RemoveStep(stepID, s.now); err != nil {
		return err
	}
	if err := s.store.SaveTimer(ctx, timer); err != nil {
		return mapStorageError(err)
	}
	return nil
}

// ExportTimer flattens an owned timer into exchange rows. A timer without
// steps exports zero rows.
func (s *Service) ExportTimer(ctx context.Context, ownerID, timerID string) ([]rowcodec.Row, error) {
	ctx, span := s.tracer.Start(ctx, "timer.export")
	defer span.End()

	timer, err := s.store.GetTimer(ctx, ownerID, timerID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return rowcodec.Encode(timer), nil
}

// ImportBatch rebuilds timers from raw rows and persists the valid ones for
// the caller. Row and group failures are collected in the result; only a
// storage fault aborts the batch.
func (s *Service) ImportBatch(ctx context.Context, ownerID string, records []rowcodec.Record) (importer.Result, error) {
	ctx, span := s.tracer.Start(ctx, "timer.import",
		trace.WithAttributes(attribute.Int("rows", len(records))))
	defer span.End()

	result := s.engine.Run(ctx, ownerID, records)

	persisted := result.Created[:0]
	for _, timer := range result.Created {
		if err := s.store.CreateTimer(ctx, timer); err != nil {
			return importer.Result{}, fmt.Errorf("store imported timer %s: %w", timer.ID, err)
		}
		persisted = append(persisted, timer)
	}
	result.Created = persisted

	span.SetAttributes(
		attribute.Int("created", len(result.Created)),
		attribute.Int("row_errors", len(result.RowErrors)),
		attribute.Int("group_errors", len(result.GroupErrors)),
	)
	return result, nil
}

// mapStorageError keeps not-owned indistinguishable from not-found.
func mapStorageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "timer not found", err)
	}
	return err
}
