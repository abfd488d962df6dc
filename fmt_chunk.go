package esx

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/pkg/errors"
)

// Audio format tags found in the fmt chunk.
const (
	FormatPCM        = 1
	FormatIEEEFloat  = 3
	FormatALaw       = 6
	FormatMuLaw      = 7
	FormatExtensible = 0xFFFE
)

// fmtFixedSize is the width of the fields every fmt chunk carries.
const fmtFixedSize = 16

// offset of the sub format GUID inside the extra bytes of a
// WAVE_FORMAT_EXTENSIBLE chunk, cbSize included.
const extensibleSubFormatOffset = 8

// FormatChunk is the decoded fmt chunk.
type FormatChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	// Extra holds every payload byte after the fixed fields, cbSize
	// included, so extended fmt chunks are written back unchanged.
	Extra []byte
}

func (f *FormatChunk) ID() [4]byte { return riff.FmtID }

func (f *FormatChunk) Kind() Kind { return KindFormat }

func (f *FormatChunk) Clone() *FormatChunk {
	if f == nil {
		return nil
	}

	out := *f
	out.Extra = append([]byte(nil), f.Extra...)

	return &out
}

// RawChunk serializes the fields in fmt chunk order.
func (f *FormatChunk) RawChunk() RawChunk {
	payload := make([]byte, fmtFixedSize, fmtFixedSize+len(f.Extra))
	binary.LittleEndian.PutUint16(payload[0:2], f.FormatTag)
	binary.LittleEndian.PutUint16(payload[2:4], f.NumChannels)
	binary.LittleEndian.PutUint32(payload[4:8], f.SampleRate)
	binary.LittleEndian.PutUint32(payload[8:12], f.AvgBytesPerSec)
	binary.LittleEndian.PutUint16(payload[12:14], f.BlockAlign)
	binary.LittleEndian.PutUint16(payload[14:16], f.BitsPerSample)
	payload = append(payload, f.Extra...)

	return NewRawChunk(riff.FmtID, payload)
}

// EffectiveFormatTag resolves WAVE_FORMAT_EXTENSIBLE to the tag embedded in
// its sub format GUID.
func (f *FormatChunk) EffectiveFormatTag() uint16 {
	if f == nil {
		return 0
	}

	if f.FormatTag == FormatExtensible && len(f.Extra) >= extensibleSubFormatOffset+2 {
		return binary.LittleEndian.Uint16(f.Extra[extensibleSubFormatOffset : extensibleSubFormatOffset+2])
	}

	return f.FormatTag
}

// AudioFormat returns the go-audio view of the channel layout.
func (f *FormatChunk) AudioFormat() *audio.Format {
	if f == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}

// Validate checks the byte rate of uncompressed encodings. Nothing is
// corrected.
func (f *FormatChunk) Validate() error {
	if f == nil {
		return ErrNoFormat
	}

	switch f.EffectiveFormatTag() {
	case FormatPCM, FormatIEEEFloat, FormatALaw, FormatMuLaw:
	default:
		return nil
	}

	want := uint64(f.SampleRate) * uint64(f.BlockAlign)
	if uint64(f.AvgBytesPerSec) != want {
		return errors.Wrapf(ErrByteRateMismatch, "byte rate %d, sample rate %d * block align %d = %d",
			f.AvgBytesPerSec, f.SampleRate, f.BlockAlign, want)
	}

	return nil
}

// NewPCMFormat returns a canonical PCM fmt chunk.
func NewPCMFormat(sampleRate, bitDepth, numChans int) *FormatChunk {
	blockAlign := bytesPerSample(bitDepth) * numChans

	return &FormatChunk{
		FormatTag:      FormatPCM,
		NumChannels:    uint16(numChans),
		SampleRate:     uint32(sampleRate),
		AvgBytesPerSec: uint32(sampleRate * blockAlign),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(bitDepth),
	}
}

// ParseFormat decodes a fmt chunk.
func ParseFormat(c RawChunk) (*FormatChunk, error) {
	f, err := decodeFormat(rawToRiff(c))
	if err != nil {
		return nil, asParseError(err, c.Offset, c.ID)
	}

	return f, nil
}

func decodeFormat(chunk *riff.Chunk) (*FormatChunk, error) {
	if chunk.Size < fmtFixedSize {
		return nil, errors.Wrapf(ErrShortFormatChunk, "%d bytes, need %d", chunk.Size, fmtFixedSize)
	}

	f := &FormatChunk{}

	err := chunk.ReadLE(&f.FormatTag)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read wav format")
	}

	err = chunk.ReadLE(&f.NumChannels)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read channels")
	}

	err = chunk.ReadLE(&f.SampleRate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sample rate")
	}

	err = chunk.ReadLE(&f.AvgBytesPerSec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read avg bytes/sec")
	}

	err = chunk.ReadLE(&f.BlockAlign)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read block align")
	}

	err = chunk.ReadLE(&f.BitsPerSample)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bit depth")
	}

	if chunk.Size > fmtFixedSize {
		f.Extra, err = io.ReadAll(chunk.R)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read fmt extension")
		}
	}

	return f, nil
}

// rawToRiff exposes a payload through the go-audio chunk reader.
func rawToRiff(c RawChunk) *riff.Chunk {
	return &riff.Chunk{
		ID:   c.ID,
		Size: len(c.Data),
		R:    bytes.NewReader(c.Data),
	}
}
