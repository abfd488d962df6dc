package esx

import (
	"errors"
	"testing"
)

func newTestTable(t *testing.T, rows ...PatternMap) (*Document, *PatternMapTable) {
	t.Helper()

	doc, err := Open(minimalDocument(t))
	if err != nil {
		t.Fatal(err)
	}

	table := doc.PatternMapTable()
	for _, row := range rows {
		if _, err := table.Append(row); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := doc.Save(); err != nil {
		t.Fatal(err)
	}

	return doc, table
}

func TestPatternMapTableSetGet(t *testing.T) {
	doc, table := newTestTable(t)

	if doc.Dirty() {
		t.Fatal("document should start clean")
	}

	if err := table.Set(1, FieldDestination, 5); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := table.Get(1, FieldDestination)
	if err != nil {
		t.Fatal(err)
	}

	if got != 5 {
		t.Fatalf("destination %d, want 5", got)
	}

	if src, _ := table.Get(1, FieldSource); src != 2 {
		t.Fatalf("source changed to %d", src)
	}

	if !doc.Dirty() {
		t.Fatal("set should mark the document dirty")
	}

	if rows := doc.PatternMapTable().Rows(); rows[1].Destination != 5 {
		t.Fatalf("edit not visible through a new table handle: %+v", rows)
	}
}

func TestPatternMapTableSetValueOutOfRange(t *testing.T) {
	doc, table := newTestTable(t)

	for _, value := range []int{MaxPatternMapValue + 1, -1} {
		err := table.Set(0, FieldDestination, value)
		if !errors.Is(err, ErrValueOutOfRange) {
			t.Fatalf("value %d: expected ErrValueOutOfRange, got %v", value, err)
		}
	}

	got, _ := table.Get(0, FieldDestination)
	if got != 1 {
		t.Fatalf("destination changed to %d", got)
	}

	if doc.Dirty() {
		t.Fatal("failed set should not mark the document dirty")
	}

	if err := table.Set(0, FieldSource, MaxPatternMapValue); err != nil {
		t.Fatalf("max value should be accepted: %v", err)
	}
}

func TestPatternMapTableIndexOutOfRange(t *testing.T) {
	_, table := newTestTable(t)

	for _, row := range []int{-1, 2, 100} {
		if _, err := table.Get(row, FieldSource); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("get row %d: expected ErrIndexOutOfRange, got %v", row, err)
		}

		if err := table.Set(row, FieldSource, 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("set row %d: expected ErrIndexOutOfRange, got %v", row, err)
		}
	}
}

func TestPatternMapTableUnknownField(t *testing.T) {
	_, table := newTestTable(t)

	if _, err := table.Get(0, Field(7)); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	if err := table.Set(0, Field(7), 1); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestPatternMapTableAppend(t *testing.T) {
	doc, table := newTestTable(t, PatternMap{Source: 4, Destination: 5})

	if table.RowCount() != 3 {
		t.Fatalf("row count %d, want 3", table.RowCount())
	}

	if _, err := table.Append(PatternMap{Source: 1 << 20}); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}

	if table.RowCount() != 3 || doc.Dirty() {
		t.Fatal("failed append changed the table")
	}

	i, err := table.Append(PatternMap{Source: 9, Destination: 9})
	if err != nil || i != 3 {
		t.Fatalf("append returned %d, %v", i, err)
	}

	if !doc.Dirty() {
		t.Fatal("append should mark the document dirty")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{in: "source", want: FieldSource},
		{in: "SRC", want: FieldSource},
		{in: "destination", want: FieldDestination},
		{in: " dest ", want: FieldDestination},
	}

	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseField(%q) = %v, %v", tt.in, got, err)
		}

		if got.String() == "unknown" {
			t.Fatalf("no name for field %d", got)
		}
	}

	if _, err := ParseField("velocity"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}
