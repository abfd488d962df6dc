package esx

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-audio/riff"
	"github.com/pkg/errors"
)

// Pattern map chunk layout, little endian:
//
//	uint32 row count
//	row count * { uint16 source, uint16 destination }
const (
	patternMapCountSize  = 4
	patternMapRecordSize = 4

	// MaxPatternMapValue is the largest source or destination a row can hold.
	MaxPatternMapValue = math.MaxUint16
)

// CIDPatternMap is the vendor chunk ID of the pattern map table.
var CIDPatternMap = [4]byte{'p', 'm', 'a', 'p'}

// PatternMap routes a source slot to a destination slot.
type PatternMap struct {
	Source      int
	Destination int
}

type patternMapRecord struct {
	Source      uint16
	Destination uint16
}

// PatternMapChunk is a decoded pattern map extension chunk. Row order is
// significant: the row position is the slot index.
type PatternMapChunk struct {
	rows  []PatternMap
	owner *Document
}

// NewPatternMapChunk validates rows and copies them into a new chunk.
func NewPatternMapChunk(rows []PatternMap) (*PatternMapChunk, error) {
	for i, row := range rows {
		if err := checkPatternMapRow(i, row); err != nil {
			return nil, err
		}
	}

	return &PatternMapChunk{rows: append([]PatternMap(nil), rows...)}, nil
}

func (p *PatternMapChunk) ID() [4]byte { return CIDPatternMap }

func (p *PatternMapChunk) Kind() Kind { return KindPatternMap }

// RawChunk serializes the rows; count and size follow the current rows.
func (p *PatternMapChunk) RawChunk() RawChunk {
	return encodePatternMap(p.rows)
}

// Table returns the editable view of the rows.
func (p *PatternMapChunk) Table() *PatternMapTable {
	return &PatternMapTable{chunk: p}
}

func (p *PatternMapChunk) touch() {
	if p.owner != nil {
		p.owner.dirty = true
	}
}

// ParsePatternMapChunk decodes the rows of a pattern map chunk.
func ParsePatternMapChunk(c RawChunk) ([]PatternMap, error) {
	rows, err := decodePatternMap(rawToRiff(c))
	if err != nil {
		return nil, asParseError(err, c.Offset, c.ID)
	}

	return rows, nil
}

// SerializePatternMapChunk encodes rows into a pattern map chunk.
func SerializePatternMapChunk(rows []PatternMap) (RawChunk, error) {
	for i, row := range rows {
		if err := checkPatternMapRow(i, row); err != nil {
			return RawChunk{}, err
		}
	}

	return encodePatternMap(rows), nil
}

func decodePatternMap(chunk *riff.Chunk) ([]PatternMap, error) {
	if chunk.Size < patternMapCountSize {
		return nil, errors.Wrapf(ErrRecordCountMismatch, "%d byte payload has no row count", chunk.Size)
	}

	var count uint32

	err := chunk.ReadLE(&count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read row count")
	}

	body := uint64(chunk.Size - patternMapCountSize)
	if uint64(count)*patternMapRecordSize != body {
		return nil, errors.Wrapf(ErrRecordCountMismatch, "%d rows declared, %d bytes of rows present", count, body)
	}

	rows := make([]PatternMap, count)
	for i := range rows {
		var rec patternMapRecord

		err := chunk.ReadLE(&rec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read row %d", i)
		}

		rows[i] = PatternMap{Source: int(rec.Source), Destination: int(rec.Destination)}
	}

	return rows, nil
}

// encodePatternMap expects rows already range checked.
func encodePatternMap(rows []PatternMap) RawChunk {
	payload := bytes.NewBuffer(make([]byte, 0, patternMapCountSize+len(rows)*patternMapRecordSize))

	_ = binary.Write(payload, binary.LittleEndian, uint32(len(rows)))
	for _, row := range rows {
		_ = binary.Write(payload, binary.LittleEndian, patternMapRecord{
			Source:      uint16(row.Source),
			Destination: uint16(row.Destination),
		})
	}

	return NewRawChunk(CIDPatternMap, payload.Bytes())
}

func checkPatternMapRow(i int, row PatternMap) error {
	if !validPatternMapValue(row.Source) {
		return errors.Wrapf(ErrValueOutOfRange, "row %d source %d", i, row.Source)
	}

	if !validPatternMapValue(row.Destination) {
		return errors.Wrapf(ErrValueOutOfRange, "row %d destination %d", i, row.Destination)
	}

	return nil
}

func validPatternMapValue(v int) bool {
	return v >= 0 && v <= MaxPatternMapValue
}
