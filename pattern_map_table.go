package esx

import (
	"strings"

	"github.com/pkg/errors"
)

// Field selects a column of the pattern map table.
type Field int

const (
	FieldSource Field = iota
	FieldDestination
)

func (f Field) String() string {
	switch f {
	case FieldSource:
		return "source"
	case FieldDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// ParseField accepts "source" or "destination", case insensitive.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", "src":
		return FieldSource, nil
	case "destination", "dest", "dst":
		return FieldDestination, nil
	default:
		return 0, errors.Wrapf(ErrUnknownField, "%q", s)
	}
}

// PatternMapTable edits the rows of a pattern map chunk in place. Rows are
// addressed by index; every row is editable. Successful edits mark the
// owning document dirty.
type PatternMapTable struct {
	chunk *PatternMapChunk
}

// RowCount returns the number of rows.
func (t *PatternMapTable) RowCount() int {
	if t == nil || t.chunk == nil {
		return 0
	}

	return len(t.chunk.rows)
}

// Get returns one field of a row.
func (t *PatternMapTable) Get(row int, field Field) (int, error) {
	if err := t.checkRow(row); err != nil {
		return 0, err
	}

	switch field {
	case FieldSource:
		return t.chunk.rows[row].Source, nil
	case FieldDestination:
		return t.chunk.rows[row].Destination, nil
	default:
		return 0, errors.Wrapf(ErrUnknownField, "field %d", int(field))
	}
}

// Set stores value in one field of a row. The table is left unchanged on
// error.
func (t *PatternMapTable) Set(row int, field Field, value int) error {
	if err := t.checkRow(row); err != nil {
		return err
	}

	if !validPatternMapValue(value) {
		return errors.Wrapf(ErrValueOutOfRange, "%d not in 0..%d", value, MaxPatternMapValue)
	}

	switch field {
	case FieldSource:
		t.chunk.rows[row].Source = value
	case FieldDestination:
		t.chunk.rows[row].Destination = value
	default:
		return errors.Wrapf(ErrUnknownField, "field %d", int(field))
	}

	t.chunk.touch()

	return nil
}

// Append adds a row at the end and returns its index.
func (t *PatternMapTable) Append(row PatternMap) (int, error) {
	if t == nil || t.chunk == nil {
		return 0, errors.WithStack(ErrIndexOutOfRange)
	}

	if err := checkPatternMapRow(len(t.chunk.rows), row); err != nil {
		return 0, err
	}

	t.chunk.rows = append(t.chunk.rows, row)
	t.chunk.touch()

	return len(t.chunk.rows) - 1, nil
}

// Rows returns a copy of all rows.
func (t *PatternMapTable) Rows() []PatternMap {
	if t == nil || t.chunk == nil {
		return nil
	}

	return append([]PatternMap(nil), t.chunk.rows...)
}

func (t *PatternMapTable) checkRow(row int) error {
	if row < 0 || row >= t.RowCount() {
		return errors.Wrapf(ErrIndexOutOfRange, "row %d of %d", row, t.RowCount())
	}

	return nil
}
