package filter

import (
	"testing"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
)

func TestParseTimerFilterEmpty(t *testing.T) {
	cond, err := ParseTimerFilter("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cond.Clause != "" || len(cond.Params) != 0 {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseTimerFilterEquality(t *testing.T) {
	cond, err := ParseTimerFilter(`name = "Workout"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cond.Clause != "name = ?" {
		t.Fatalf("unexpected clause: %q", cond.Clause)
	}
	if len(cond.Params) != 1 || cond.Params[0] != "Workout" {
		t.Fatalf("unexpected params: %v", cond.Params)
	}
}

func TestParseTimerFilterLogical(t *testing.T) {
	cond, err := ParseTimerFilter(`name = "Workout" AND created_at > timestamp("2026-01-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cond.Clause != "(name = ? AND created_at > ?)" {
		t.Fatalf("unexpected clause: %q", cond.Clause)
	}
	if len(cond.Params) != 2 {
		t.Fatalf("unexpected params: %v", cond.Params)
	}
	if cond.Params[1] != "2026-01-01T00:00:00Z" {
		t.Fatalf("unexpected timestamp param: %v", cond.Params[1])
	}
}

func TestParseTimerFilterOr(t *testing.T) {
	cond, err := ParseTimerFilter(`name = "A" OR name = "B"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cond.Clause != "(name = ? OR name = ?)" {
		t.Fatalf("unexpected clause: %q", cond.Clause)
	}
}

func TestParseTimerFilterUnknownField(t *testing.T) {
	_, err := ParseTimerFilter(`owner_id = "someone-else"`)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !apperrors.IsCode(err, apperrors.CodeFilterInvalid) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseTimerFilterMalformed(t *testing.T) {
	_, err := ParseTimerFilter(`name = `)
	if err == nil {
		t.Fatal("expected error for malformed expression")
	}
	if !apperrors.IsCode(err, apperrors.CodeFilterInvalid) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseTimerFilterBadTimestamp(t *testing.T) {
	_, err := ParseTimerFilter(`created_at > timestamp("yesterday")`)
	if err == nil {
		t.Fatal("expected error for bad timestamp")
	}
	if !apperrors.IsCode(err, apperrors.CodeFilterInvalid) {
		t.Fatalf("unexpected error: %v", err)
	}
}
