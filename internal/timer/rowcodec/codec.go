// Package rowcodec converts timers to and from the flat row exchange format.
//
// One row represents exactly one step plus its parent timer's header fields:
//
//	timer_name, timer_description, step_order, step_title,
//	duration_seconds, repetitions, notes
//
// Encoding emits rows in canonical step order and repeats the timer header
// verbatim on every row. Decoding is per-row and reports malformed rows
// without inspecting siblings; cross-row checks belong to the importer.
package rowcodec

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	"github.com/louisbranch/tempo/internal/timer/domain"
)

// FieldCount is the number of fields in one exchange row.
const FieldCount = 7

// fieldNames are the canonical header labels, in wire order.
var fieldNames = [FieldCount]string{
	"timer_name",
	"timer_description",
	"step_order",
	"step_title",
	"duration_seconds",
	"repetitions",
	"notes",
}

// Header returns the canonical header labels in wire order.
func Header() []string {
	out := make([]string, FieldCount)
	copy(out, fieldNames[:])
	return out
}

// Row is one flat exchange record with all fields in textual form.
type Row struct {
	TimerName        string
	TimerDescription string
	StepOrder        string
	StepTitle        string
	DurationSeconds  string
	Repetitions      string
	Notes            string
}

// Fields returns the row's values in wire order.
func (r Row) Fields() []string {
	return []string{
		r.TimerName,
		r.TimerDescription,
		r.StepOrder,
		r.StepTitle,
		r.DurationSeconds,
		r.Repetitions,
		r.Notes,
	}
}

// RowFromFields builds a row from values in wire order. It does not
// validate; Decode reports malformed content.
func RowFromFields(fields []string) (Row, bool) {
	if len(fields) != FieldCount {
		return Row{}, false
	}
	return Row{
		TimerName:        fields[0],
		TimerDescription: fields[1],
		StepOrder:        fields[2],
		StepTitle:        fields[3],
		DurationSeconds:  fields[4],
		Repetitions:      fields[5],
		Notes:            fields[6],
	}, true
}

// GroupKey identifies the timer a row belongs to. Description participates
// in identity so distinct timers sharing a name are never merged.
type GroupKey struct {
	Name        string
	Description string
}

// Encode flattens a timer into one row per step, in canonical step order.
// Numeric fields use plain base-10 digits and repetitions is always written
// explicitly. A timer with zero steps encodes to zero rows.
func Encode(timer domain.Timer) []Row {
	rows := make([]Row, 0, len(timer.Steps))
	for _, step := range timer.Steps {
		rows = append(rows, Row{
			TimerName:        timer.Name,
			TimerDescription: timer.Description,
			StepOrder:        strconv.Itoa(step.OrderIndex),
			StepTitle:        step.Title,
			DurationSeconds:  strconv.Itoa(step.DurationSeconds),
			Repetitions:      strconv.Itoa(step.Repetitions),
			Notes:            step.Notes,
		})
	}
	return rows
}

// Decode parses one row into its timer header and step draft. A blank
// repetitions field means the default of 1; a present "0" or any
// non-positive value is malformed, as are non-numeric order or duration.
func Decode(row Row) (GroupKey, domain.StepInput, error) {
	key := GroupKey{
		Name:        strings.TrimSpace(row.TimerName),
		Description: strings.TrimSpace(row.TimerDescription),
	}

	title := strings.TrimSpace(row.StepTitle)
	if title == "" {
		return GroupKey{}, domain.StepInput{}, malformed("step_title is required")
	}

	orderField := strings.TrimSpace(row.StepOrder)
	if orderField == "" {
		return GroupKey{}, domain.StepInput{}, malformed("step_order is required")
	}
	orderIndex, err := strconv.Atoi(orderField)
	if err != nil {
		return GroupKey{}, domain.StepInput{}, malformed("step_order must be a whole number")
	}
	if orderIndex < 0 {
		return GroupKey{}, domain.StepInput{}, malformed("step_order must be zero or greater")
	}

	durationField := strings.TrimSpace(row.DurationSeconds)
	if durationField == "" {
		return GroupKey{}, domain.StepInput{}, malformed("duration_seconds is required")
	}
	duration, err := strconv.Atoi(durationField)
	if err != nil {
		return GroupKey{}, domain.StepInput{}, malformed("duration_seconds must be a whole number")
	}
	if duration < 1 {
		return GroupKey{}, domain.StepInput{}, malformed("duration_seconds must be at least 1")
	}

	repetitions := 1
	if repsField := strings.TrimSpace(row.Repetitions); repsField != "" {
		repetitions, err = strconv.Atoi(repsField)
		if err != nil {
			return GroupKey{}, domain.StepInput{}, malformed("repetitions must be a whole number")
		}
		if repetitions < 1 {
			return GroupKey{}, domain.StepInput{}, malformed("repetitions must be at least 1")
		}
	}

	return key, domain.StepInput{
		OrderIndex:      orderIndex,
		Title:           title,
		DurationSeconds: duration,
		Repetitions:     repetitions,
		Notes:           strings.TrimSpace(row.Notes),
	}, nil
}

func malformed(reason string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeImportRowMalformed, reason,
		map[string]string{"Reason": reason})
}

// Record is one raw input row prior to decoding, as split from its source.
type Record struct {
	Fields []string
}

// DecodeRecord checks the record's shape and decodes it. Records whose
// field count does not match the wire format are malformed.
func DecodeRecord(record Record) (GroupKey, domain.StepInput, error) {
	row, ok := RowFromFields(record.Fields)
	if !ok {
		return GroupKey{}, domain.StepInput{},
			malformed("expected " + strconv.Itoa(FieldCount) + " fields, got " + strconv.Itoa(len(record.Fields)))
	}
	return Decode(row)
}
