package esx

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrParse is the umbrella error for anything returned by Open or by a
	// chunk decode. Use errors.Is with the more specific sentinels below to
	// find out what went wrong.
	ErrParse = errors.New("esx: parse error")
	// ErrTruncatedStream is returned when a chunk header or payload runs past
	// the end of the available bytes.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrInconsistentLength is returned when a chunk's declared size does not
	// match the payload it carries.
	ErrInconsistentLength = errors.New("inconsistent chunk length")
	// ErrMalformedContainer is returned when a RIFF/LIST payload can't be
	// split into child chunks.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrShortFormatChunk is returned when a fmt chunk is smaller than its
	// fixed fields.
	ErrShortFormatChunk = errors.New("short fmt chunk")
	// ErrRecordCountMismatch is returned when an extension chunk's row count
	// doesn't match its payload size.
	ErrRecordCountMismatch = errors.New("record count mismatch")
	// ErrIndexOutOfRange is returned when a table row doesn't exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrValueOutOfRange is returned when a value can't be stored in its
	// record field.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrUnknownField is returned for a pattern map field other than source
	// or destination.
	ErrUnknownField = errors.New("unknown field")
	// ErrByteRateMismatch is returned by FormatChunk.Validate when the byte
	// rate isn't sample rate * block align.
	ErrByteRateMismatch = errors.New("byte rate mismatch")
	// ErrUnsupportedEncoding is returned when sample bytes can't be reshaped
	// into integer frames.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
	// ErrNoFormat is returned when an operation needs a fmt chunk and the
	// document has none.
	ErrNoFormat = errors.New("no fmt chunk")
)

// ParseError reports a decode failure and the byte offset where it was
// detected.
type ParseError struct {
	// Offset is the absolute position in the input stream.
	Offset int
	// ID is the identifier of the chunk being decoded, when known.
	ID  [4]byte
	Err error
}

func (e *ParseError) Error() string {
	if e.ID == ([4]byte{}) {
		return fmt.Sprintf("esx: at offset %d: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("esx: chunk %q at offset %d: %v", e.ID[:], e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func newParseError(offset int, id [4]byte, sentinel error, format string, args ...any) *ParseError {
	return &ParseError{
		Offset: offset,
		ID:     id,
		Err:    errors.Wrapf(sentinel, format, args...),
	}
}

// asParseError attaches an offset to err unless it already carries one.
func asParseError(err error, offset int, id [4]byte) error {
	if err == nil {
		return nil
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		return perr
	}

	return &ParseError{Offset: offset, ID: id, Err: err}
}
