package esx

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const chunkHeaderSize = 8

// FramedSize returns the number of bytes a chunk with the given payload size
// occupies in a stream: header, payload and pad byte.
func FramedSize(size uint32) int {
	n := chunkHeaderSize + int(size)
	if size%2 == 1 {
		n++
	}

	return n
}

// DecodeChunk reads one chunk starting at offset and returns it along with
// the number of bytes consumed, pad byte included.
// The returned payload is a copy; data is not retained.
func DecodeChunk(data []byte, offset int) (RawChunk, int, error) {
	return decodeChunk(data, offset, 0)
}

// decodeChunk is DecodeChunk for a buffer that starts at base in the
// original stream. Offsets reported in errors and in RawChunk.Offset are
// absolute.
func decodeChunk(data []byte, offset, base int) (RawChunk, int, error) {
	if offset < 0 || offset > len(data) {
		return RawChunk{}, 0, newParseError(base+offset, [4]byte{}, ErrTruncatedStream,
			"offset outside of a %d byte stream", len(data))
	}

	remaining := len(data) - offset
	if remaining < chunkHeaderSize {
		return RawChunk{}, 0, newParseError(base+offset, [4]byte{}, ErrTruncatedStream,
			"chunk header needs %d bytes, %d left", chunkHeaderSize, remaining)
	}

	var id [4]byte
	copy(id[:], data[offset:offset+4])

	size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])

	framed := int64(chunkHeaderSize) + int64(size) + int64(size%2)
	if int64(remaining) < framed {
		return RawChunk{}, 0, newParseError(base+offset, id, ErrTruncatedStream,
			"chunk needs %d bytes, %d left", framed, remaining)
	}

	start := offset + chunkHeaderSize
	end := start + int(size)

	return RawChunk{
		ID:     id,
		Size:   size,
		Data:   append([]byte(nil), data[start:end]...),
		Offset: base + offset,
	}, int(framed), nil
}

// EncodeChunk frames a chunk. A zero pad byte is written after odd sized
// payloads. The declared Size is written as is and must match the payload.
func EncodeChunk(c RawChunk) ([]byte, error) {
	return AppendChunk(make([]byte, 0, FramedSize(c.Size)), c)
}

// AppendChunk is EncodeChunk appending to dst.
func AppendChunk(dst []byte, c RawChunk) ([]byte, error) {
	if int64(c.Size) != int64(len(c.Data)) {
		return dst, errors.Wrapf(ErrInconsistentLength, "chunk %q declares %d bytes but holds %d",
			c.ID[:], c.Size, len(c.Data))
	}

	dst = append(dst, c.ID[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, c.Size)
	dst = append(dst, c.Data...)

	if c.Size%2 == 1 {
		dst = append(dst, 0)
	}

	return dst, nil
}
