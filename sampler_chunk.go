package esx

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

// CIDSmpl is the chunk ID for the standard sampler chunk.
var CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}

const (
	smplHeaderSize = 36
	smplLoopSize   = 24
)

// SamplerInfo is the decoded smpl chunk: tuning of the whole data chunk
// and its loop points.
type SamplerInfo struct {
	Manufacturer      [4]byte
	Product           [4]byte
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	SamplerDataSize   uint32
	Loops             []SampleLoop
}

// SampleLoop is one loop record of a smpl chunk. Start and End are sample
// frame offsets.
type SampleLoop struct {
	CuePointID [4]byte
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	PlayCount  uint32
}

// SamplerInfo decodes the first smpl chunk. The chunk stays an unknown
// chunk and is written back unchanged. It returns nil when the document has
// none.
func (d *Document) SamplerInfo() (*SamplerInfo, error) {
	for _, c := range d.chunks {
		u, ok := c.(*UnknownChunk)
		if !ok || u.raw.ID != CIDSmpl {
			continue
		}

		info, err := decodeSampler(u.raw.Data)
		if err != nil {
			return nil, asParseError(err, u.raw.Offset, CIDSmpl)
		}

		return info, nil
	}

	return nil, nil
}

func decodeSampler(data []byte) (*SamplerInfo, error) {
	if len(data) < smplHeaderSize {
		return nil, errors.Wrapf(ErrRecordCountMismatch, "smpl chunk of %d bytes, need %d", len(data), smplHeaderSize)
	}

	info := &SamplerInfo{}
	reader := bytes.NewReader(data)

	// every field before the loops is fixed width
	header := []any{
		&info.Manufacturer, &info.Product, &info.SamplePeriod, &info.MIDIUnityNote,
		&info.MIDIPitchFraction, &info.SMPTEFormat, &info.SMPTEOffset,
		&info.NumSampleLoops, &info.SamplerDataSize,
	}

	for _, field := range header {
		if err := binary.Read(reader, binary.LittleEndian, field); err != nil {
			return nil, errors.Wrap(err, "failed to read smpl header")
		}
	}

	if need := int64(info.NumSampleLoops) * smplLoopSize; need > int64(reader.Len()) {
		return nil, errors.Wrapf(ErrRecordCountMismatch, "%d loops declared, %d bytes left", info.NumSampleLoops, reader.Len())
	}

	info.Loops = make([]SampleLoop, info.NumSampleLoops)
	if err := binary.Read(reader, binary.LittleEndian, info.Loops); err != nil {
		return nil, errors.Wrap(err, "failed to read sample loops")
	}

	return info, nil
}
