package esx

import (
	"bytes"
	"encoding/binary"

	"github.com/go-audio/riff"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Sample info chunk layout, little endian:
//
//	uint32 slot count
//	slot count * 32 byte records (see sampleInfoRecord)
const (
	sampleInfoCountSize  = 4
	sampleInfoRecordSize = 32
)

// SampleNameLen is the width of the NUL padded name field of a slot.
const SampleNameLen = 8

// SampleFlagStereo marks a slot whose sample data is interleaved stereo.
const SampleFlagStereo = 0x01

// CIDSampleInfo is the vendor chunk ID of the sample slot table.
var CIDSampleInfo = [4]byte{'s', 'm', 'p', 'i'}

// SampleInfo describes one sample slot. Offsets are byte positions inside
// the data chunk.
type SampleInfo struct {
	// Name holds the stored bytes, Windows-1252 and NUL padded. Use
	// SampleName to build one and Title to read it.
	Name        [SampleNameLen]byte
	Start       uint32
	End         uint32
	LoopStart   uint32
	SampleRate  uint32
	Tune        int16
	PlayLevel   uint8
	StretchStep uint8
	Flags       uint8
	Reserved    [3]byte
}

// Stereo reports whether SampleFlagStereo is set.
func (s SampleInfo) Stereo() bool {
	return s.Flags&SampleFlagStereo != 0
}

// Title decodes Name without its NUL padding. Bytes Windows-1252 leaves
// undefined come back as U+FFFD; Name itself is untouched.
func (s SampleInfo) Title() string {
	b := bytes.TrimRight(s.Name[:], "\x00")

	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}

	return string(out)
}

// SampleName encodes name as a slot name field. ErrValueOutOfRange when a
// character has no Windows-1252 byte or the result is longer than
// SampleNameLen.
func SampleName(name string) ([SampleNameLen]byte, error) {
	var out [SampleNameLen]byte

	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return out, errors.Wrapf(ErrValueOutOfRange, "name %q is not Windows-1252", name)
	}

	if len(b) > SampleNameLen {
		return out, errors.Wrapf(ErrValueOutOfRange, "name %q longer than %d bytes", name, SampleNameLen)
	}

	copy(out[:], b)

	return out, nil
}

type sampleInfoRecord struct {
	Name        [SampleNameLen]byte
	Start       uint32
	End         uint32
	LoopStart   uint32
	SampleRate  uint32
	Tune        int16
	PlayLevel   uint8
	StretchStep uint8
	Flags       uint8
	Reserved    [3]byte
}

// SampleInfoChunk is the decoded sample slot table.
type SampleInfoChunk struct {
	slots []SampleInfo
	owner *Document
}

// NewSampleInfoChunk copies slots into a new chunk.
func NewSampleInfoChunk(slots []SampleInfo) *SampleInfoChunk {
	return &SampleInfoChunk{slots: append([]SampleInfo(nil), slots...)}
}

func (s *SampleInfoChunk) ID() [4]byte { return CIDSampleInfo }

func (s *SampleInfoChunk) Kind() Kind { return KindSampleInfo }

func (s *SampleInfoChunk) RawChunk() RawChunk {
	return SerializeSampleInfoChunk(s.slots)
}

// Len returns the number of slots.
func (s *SampleInfoChunk) Len() int {
	if s == nil {
		return 0
	}

	return len(s.slots)
}

// Get returns slot i.
func (s *SampleInfoChunk) Get(i int) (SampleInfo, error) {
	if i < 0 || i >= s.Len() {
		return SampleInfo{}, errors.Wrapf(ErrIndexOutOfRange, "slot %d of %d", i, s.Len())
	}

	return s.slots[i], nil
}

// Set replaces slot i. The chunk is left unchanged on error.
func (s *SampleInfoChunk) Set(i int, info SampleInfo) error {
	if i < 0 || i >= s.Len() {
		return errors.Wrapf(ErrIndexOutOfRange, "slot %d of %d", i, s.Len())
	}

	s.slots[i] = info
	if s.owner != nil {
		s.owner.dirty = true
	}

	return nil
}

// Slots returns a copy of all slots.
func (s *SampleInfoChunk) Slots() []SampleInfo {
	if s == nil {
		return nil
	}

	return append([]SampleInfo(nil), s.slots...)
}

// ParseSampleInfoChunk decodes the slots of a sample info chunk.
func ParseSampleInfoChunk(c RawChunk) ([]SampleInfo, error) {
	slots, err := decodeSampleInfo(rawToRiff(c))
	if err != nil {
		return nil, asParseError(err, c.Offset, c.ID)
	}

	return slots, nil
}

// SerializeSampleInfoChunk encodes slots; count and size follow len(slots).
// Name bytes are written as stored.
func SerializeSampleInfoChunk(slots []SampleInfo) RawChunk {
	payload := bytes.NewBuffer(make([]byte, 0, sampleInfoCountSize+len(slots)*sampleInfoRecordSize))

	_ = binary.Write(payload, binary.LittleEndian, uint32(len(slots)))

	for _, slot := range slots {
		_ = binary.Write(payload, binary.LittleEndian, sampleInfoRecord{
			Name:        slot.Name,
			Start:       slot.Start,
			End:         slot.End,
			LoopStart:   slot.LoopStart,
			SampleRate:  slot.SampleRate,
			Tune:        slot.Tune,
			PlayLevel:   slot.PlayLevel,
			StretchStep: slot.StretchStep,
			Flags:       slot.Flags,
			Reserved:    slot.Reserved,
		})
	}

	return NewRawChunk(CIDSampleInfo, payload.Bytes())
}

func decodeSampleInfo(chunk *riff.Chunk) ([]SampleInfo, error) {
	if chunk.Size < sampleInfoCountSize {
		return nil, errors.Wrapf(ErrRecordCountMismatch, "%d byte payload has no slot count", chunk.Size)
	}

	var count uint32

	err := chunk.ReadLE(&count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read slot count")
	}

	body := uint64(chunk.Size - sampleInfoCountSize)
	if uint64(count)*sampleInfoRecordSize != body {
		return nil, errors.Wrapf(ErrRecordCountMismatch, "%d slots declared, %d bytes of slots present", count, body)
	}

	slots := make([]SampleInfo, count)
	for i := range slots {
		var rec sampleInfoRecord

		err := chunk.ReadLE(&rec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read slot %d", i)
		}

		slots[i] = SampleInfo{
			Name:        rec.Name,
			Start:       rec.Start,
			End:         rec.End,
			LoopStart:   rec.LoopStart,
			SampleRate:  rec.SampleRate,
			Tune:        rec.Tune,
			PlayLevel:   rec.PlayLevel,
			StretchStep: rec.StretchStep,
			Flags:       rec.Flags,
			Reserved:    rec.Reserved,
		}
	}

	return slots, nil
}
