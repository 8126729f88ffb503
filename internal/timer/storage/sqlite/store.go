// Package sqlite provides a SQLite-backed timer storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/tempo/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/tempo/internal/timer/domain"
	"github.com/louisbranch/tempo/internal/timer/storage"
	"github.com/louisbranch/tempo/internal/timer/storage/sqlite/migrations"
)

// Store persists timers in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Timestamps are stored as RFC3339Nano text so filter comparisons work with
// plain string ordering.
func toTimestamp(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func fromTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Open opens a SQLite timer store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Step deletion relies on the ON DELETE CASCADE constraint, so a connection
// without foreign keys enforced would silently orphan step rows.
func ensureForeignKeysEnabled(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("sqlite db is required")
	}
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateTimer inserts a timer and its steps inside one transaction.
func (s *Store) CreateTimer(ctx context.Context, timer domain.Timer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(timer.ID) == "" {
		return fmt.Errorf("timer id is required")
	}
	if strings.TrimSpace(timer.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO timers (id, owner_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		timer.ID,
		timer.OwnerID,
		timer.Name,
		timer.Description,
		toTimestamp(timer.CreatedAt),
		toTimestamp(timer.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert timer: %w", err)
	}

	if err := insertSteps(ctx, tx, timer); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetTimer loads one timer owned by ownerID, with steps in canonical order.
func (s *Store) GetTimer(ctx context.Context, ownerID, timerID string) (domain.Timer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Timer{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Timer{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, name, description, created_at, updated_at
		 FROM timers WHERE id = ? AND owner_id = ?`,
		timerID, ownerID,
	)
	timer, err := scanTimer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Timer{}, storage.ErrNotFound
		}
		return domain.Timer{}, fmt.Errorf("get timer: %w", err)
	}

	steps, err := s.loadSteps(ctx, timer.ID)
	if err != nil {
		return domain.Timer{}, err
	}
	timer.Steps = steps
	return timer, nil
}

// ListTimers returns the owner's timers matching the query, newest first.
func (s *Store) ListTimers(ctx context.Context, ownerID string, query storage.ListQuery) ([]domain.Timer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	sqlQuery := `SELECT id, owner_id, name, description, created_at, updated_at
		 FROM timers WHERE owner_id = ?`
	params := []any{ownerID}
	if strings.TrimSpace(query.Where) != "" {
		sqlQuery += " AND " + query.Where
		params = append(params, query.Params...)
	}
	sqlQuery += " ORDER BY created_at DESC, id"
	if query.Limit > 0 {
		sqlQuery += " LIMIT ?"
		params = append(params, query.Limit)
		if query.Offset > 0 {
			sqlQuery += " OFFSET ?"
			params = append(params, query.Offset)
		}
	}

	rows, err := s.sqlDB.QueryContext(ctx, sqlQuery, params...)
	if err != nil {
		return nil, fmt.Errorf("list timers: %w", err)
	}
	defer rows.Close()

	var timers []domain.Timer
	for rows.Next() {
		timer, err := scanTimer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timer: %w", err)
		}
		timers = append(timers, timer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list timers: %w", err)
	}

	for i := range timers {
		steps, err := s.loadSteps(ctx, timers[i].ID)
		if err != nil {
			return nil, err
		}
		timers[i].Steps = steps
	}
	return timers, nil
}

// SaveTimer replaces a stored timer's metadata and step set in one
// transaction. The step rows are rewritten whole so the stored set always
// mirrors the domain entity.
func (s *Store) SaveTimer(ctx context.Context, timer domain.Timer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(
		ctx,
		`UPDATE timers SET name = ?, description = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		timer.Name,
		timer.Description,
		toTimestamp(timer.UpdatedAt),
		timer.ID,
		timer.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update timer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update timer: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM steps WHERE timer_id = ?`, timer.ID); err != nil {
		return fmt.Errorf("clear steps: %w", err)
	}
	if err := insertSteps(ctx, tx, timer); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DeleteTimer removes a timer; its steps go with it via the cascade.
func (s *Store) DeleteTimer(ctx context.Context, ownerID, timerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM timers WHERE id = ? AND owner_id = ?`,
		timerID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete timer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete timer: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func insertSteps(ctx context.Context, tx *sql.Tx, timer domain.Timer) error {
	for _, step := range timer.Steps {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO steps (id, timer_id, order_index, title, duration_seconds, repetitions, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			step.ID,
			timer.ID,
			step.OrderIndex,
			step.Title,
			step.DurationSeconds,
			step.Repetitions,
			step.Notes,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Wrap(apperrors.CodeStepOrderConflict,
					"step order already used in this timer", err)
			}
			return fmt.Errorf("insert step %s: %w", step.ID, err)
		}
	}
	return nil
}

func (s *Store) loadSteps(ctx context.Context, timerID string) ([]domain.Step, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, timer_id, order_index, title, duration_seconds, repetitions, notes
		 FROM steps WHERE timer_id = ? ORDER BY order_index`,
		timerID,
	)
	if err != nil {
		return nil, fmt.Errorf("load steps: %w", err)
	}
	defer rows.Close()

	var steps []domain.Step
	for rows.Next() {
		var step domain.Step
		if err := rows.Scan(
			&step.ID,
			&step.TimerID,
			&step.OrderIndex,
			&step.Title,
			&step.DurationSeconds,
			&step.Repetitions,
			&step.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load steps: %w", err)
	}
	return steps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimer(row rowScanner) (domain.Timer, error) {
	var timer domain.Timer
	var createdAt, updatedAt string
	if err := row.Scan(
		&timer.ID,
		&timer.OwnerID,
		&timer.Name,
		&timer.Description,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Timer{}, err
	}
	timer.CreatedAt = fromTimestamp(createdAt)
	timer.UpdatedAt = fromTimestamp(updatedAt)
	return timer, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.TimerStore = (*Store)(nil)
