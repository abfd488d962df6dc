package esx

import (
	"encoding/binary"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/pkg/errors"
)

// SampleData is the raw payload of a data chunk. The bytes are never
// interpreted; their layout is described by the sibling fmt chunk.
type SampleData struct {
	data   []byte
	format *FormatChunk
}

// NewSampleData wraps a copy of pcm.
func NewSampleData(pcm []byte) *SampleData {
	return &SampleData{data: append([]byte(nil), pcm...)}
}

func (s *SampleData) ID() [4]byte { return riff.DataFormatID }

func (s *SampleData) Kind() Kind { return KindSampleData }

func (s *SampleData) RawChunk() RawChunk {
	return NewRawChunk(riff.DataFormatID, append([]byte(nil), s.data...))
}

// Len returns the payload length in bytes.
func (s *SampleData) Len() int {
	if s == nil {
		return 0
	}

	return len(s.data)
}

// Bytes returns a copy of the payload.
func (s *SampleData) Bytes() []byte {
	if s == nil {
		return nil
	}

	return append([]byte(nil), s.data...)
}

// At returns the byte at index i.
func (s *SampleData) At(i int) (byte, error) {
	if i < 0 || i >= s.Len() {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "byte %d of %d", i, s.Len())
	}

	return s.data[i], nil
}

// Slice returns a copy of the bytes in [start, end).
func (s *SampleData) Slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > s.Len() {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "range %d..%d of %d bytes", start, end, s.Len())
	}

	return append([]byte(nil), s.data[start:end]...), nil
}

// Sub returns a detached copy of [start, end) described by the same fmt
// chunk.
func (s *SampleData) Sub(start, end int) (*SampleData, error) {
	data, err := s.Slice(start, end)
	if err != nil {
		return nil, err
	}

	return &SampleData{data: data, format: s.format}, nil
}

// writeAt copies b to offset off, growing the payload with zeros as needed.
func (s *SampleData) writeAt(off int, b []byte) {
	if end := off + len(b); end > len(s.data) {
		s.data = append(s.data, make([]byte, end-len(s.data))...)
	}

	copy(s.data[off:], b)
}

// zero clears [start, end), clipped to the payload.
func (s *SampleData) zero(start, end int) {
	end = min(end, len(s.data))
	if start < 0 || start >= end {
		return
	}

	clear(s.data[start:end])
}

// Format returns a copy of the fmt chunk describing the payload, or nil if
// the document has none.
func (s *SampleData) Format() *FormatChunk {
	if s == nil {
		return nil
	}

	return s.format.Clone()
}

// Frames returns the number of whole frames, or 0 without a usable fmt
// chunk.
func (s *SampleData) Frames() int {
	if s == nil || s.format == nil || s.format.BlockAlign == 0 {
		return 0
	}

	return len(s.data) / int(s.format.BlockAlign)
}

// IntBuffer reshapes little endian integer PCM into a go-audio buffer.
// 8 bit samples stay unsigned, as stored. A trailing partial sample is
// dropped.
func (s *SampleData) IntBuffer() (*audio.IntBuffer, error) {
	if s == nil || s.format == nil {
		return nil, ErrNoFormat
	}

	tag := s.format.EffectiveFormatTag()
	if tag != FormatPCM {
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "format tag %d", tag)
	}

	bitDepth := int(s.format.BitsPerSample)
	if bitDepth < 1 || bitDepth > 32 {
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "%d bits per sample", bitDepth)
	}

	bps := bytesPerSample(bitDepth)
	buf := &audio.IntBuffer{
		Format:         s.format.AudioFormat(),
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(s.data)/bps),
	}

	for i := range buf.Data {
		buf.Data[i] = decodePCMSample(s.data[i*bps : (i+1)*bps])
	}

	return buf, nil
}

func decodePCMSample(b []byte) int {
	switch len(b) {
	case 1:
		return int(b[0])
	case 2:
		return int(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		return int(audio.Int24LETo32(b))
	default:
		return int(int32(binary.LittleEndian.Uint32(b)))
	}
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

func decodeSampleData(chunk *riff.Chunk) (*SampleData, error) {
	data := make([]byte, chunk.Size)

	_, err := io.ReadFull(chunk, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read data chunk")
	}

	return &SampleData{data: data}, nil
}
