package rowcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes the canonical header followed by the given rows as
// UTF-8 CSV text.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Fields()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV reads CSV text into raw records. A leading header row is
// recognized by a case-insensitive match of the field names and skipped;
// when a header is present, columns are mapped by name so column order does
// not matter and unknown columns are ignored. Without a header, records are
// taken positionally; the per-record field count is checked at decode time.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // per-record shape errors stay row-level

	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	columns := headerIndex(first)
	records := []Record{}
	if columns == nil {
		records = append(records, Record{Fields: first})
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if columns != nil {
			fields = mapByHeader(fields, columns)
		}
		records = append(records, Record{Fields: fields})
	}
	return records, nil
}

// headerIndex reports the wire-order column positions when fields form a
// header row, or nil when they do not. Every canonical name must appear.
func headerIndex(fields []string) []int {
	byName := make(map[string]int, len(fields))
	for i, field := range fields {
		byName[strings.ToLower(strings.TrimSpace(field))] = i
	}
	columns := make([]int, FieldCount)
	for i, name := range fieldNames {
		idx, ok := byName[name]
		if !ok {
			return nil
		}
		columns[i] = idx
	}
	return columns
}

// mapByHeader reorders a record into wire order using the header's column
// positions. Columns missing from a short record read as blank.
func mapByHeader(fields []string, columns []int) []string {
	out := make([]string, FieldCount)
	for i, idx := range columns {
		if idx < len(fields) {
			out[i] = fields[idx]
		}
	}
	return out
}
