package esx

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPlayLevel is the level given to imported samples.
const DefaultPlayLevel = 100

// SampleSlot returns a copy of the data chunk bytes referenced by slot i.
func (d *Document) SampleSlot(i int) ([]byte, error) {
	s, err := d.SampleSlotData(i)
	if err != nil {
		return nil, err
	}

	return s.data, nil
}

// SampleSlotData is SampleSlot with the bytes still tied to the fmt chunk.
func (d *Document) SampleSlotData(i int) (*SampleData, error) {
	info, err := d.SampleInfos().Get(i)
	if err != nil {
		return nil, err
	}

	data := d.SampleData()
	if data == nil {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "slot %d: document has no data chunk", i)
	}

	out, err := data.Sub(int(info.Start), int(info.End))
	if err != nil {
		return nil, errors.Wrapf(err, "slot %d", i)
	}

	return out, nil
}

// AddSampleInfos returns the existing sample info chunk or appends one with
// n empty slots.
func (d *Document) AddSampleInfos(n int) *SampleInfoChunk {
	if s := d.SampleInfos(); s != nil {
		return s
	}

	s := &SampleInfoChunk{slots: make([]SampleInfo, max(n, 0)), owner: d}
	d.chunks = append(d.chunks, s)
	d.dirty = true

	return s
}

// DeleteSampleSlot empties slot i. Its bytes in the data chunk are zeroed
// unless another slot still references them; the data chunk keeps its
// length so other offsets stay valid.
func (d *Document) DeleteSampleSlot(i int) error {
	infos := d.SampleInfos()

	info, err := infos.Get(i)
	if err != nil {
		return err
	}

	if data := d.SampleData(); data != nil && !infos.shared(i) {
		data.zero(int(info.Start), int(info.End))
	}

	infos.slots[i] = SampleInfo{}
	d.dirty = true

	logrus.WithFields(logrus.Fields{"slot": i, "start": info.Start, "end": info.End}).Debug("deleted sample slot")

	return nil
}

// ImportSampleSlot stores pcm after the last byte used by any slot and
// points slot i at it. format describes pcm: it must be integer PCM with
// the bit depth of the document's fmt chunk, mono or stereo, and pcm must
// hold whole frames. The slot loops from its start, plays at
// DefaultPlayLevel and is flagged stereo for two channels.
func (d *Document) ImportSampleSlot(i int, name string, pcm []byte, format *FormatChunk) error {
	infos := d.SampleInfos()
	if _, err := infos.Get(i); err != nil {
		return err
	}

	encoded, err := SampleName(name)
	if err != nil {
		return err
	}

	if err := d.checkImportFormat(format); err != nil {
		return errors.Wrapf(err, "slot %d", i)
	}

	if len(pcm)%int(format.BlockAlign) != 0 {
		return errors.Wrapf(ErrInconsistentLength, "slot %d: %d bytes is not a whole number of %d byte frames", i, len(pcm), format.BlockAlign)
	}

	data := d.SampleData()
	if data == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "slot %d: document has no data chunk", i)
	}

	var start uint32
	for _, slot := range infos.slots {
		start = max(start, slot.End)
	}

	if uint64(start)+uint64(len(pcm)) > math.MaxUint32 {
		return errors.Wrapf(ErrValueOutOfRange, "slot %d: %d bytes at offset %d overflow the data chunk", i, len(pcm), start)
	}

	end := start + uint32(len(pcm))

	var flags uint8
	if format.NumChannels == 2 {
		flags = SampleFlagStereo
	}

	data.writeAt(int(start), pcm)
	infos.slots[i] = SampleInfo{
		Name:       encoded,
		Start:      start,
		End:        end,
		LoopStart:  start,
		SampleRate: format.SampleRate,
		PlayLevel:  DefaultPlayLevel,
		Flags:      flags,
	}
	d.dirty = true

	logrus.WithFields(logrus.Fields{"slot": i, "start": start, "end": end}).Debug("imported sample slot")

	return nil
}

func (d *Document) checkImportFormat(format *FormatChunk) error {
	own := d.format()
	if format == nil || own == nil {
		return ErrNoFormat
	}

	if tag := format.EffectiveFormatTag(); tag != FormatPCM {
		return errors.Wrapf(ErrUnsupportedEncoding, "format tag %d", tag)
	}

	if format.BitsPerSample != own.BitsPerSample {
		return errors.Wrapf(ErrUnsupportedEncoding, "%d bit samples in a %d bit document", format.BitsPerSample, own.BitsPerSample)
	}

	if format.NumChannels != 1 && format.NumChannels != 2 {
		return errors.Wrapf(ErrUnsupportedEncoding, "%d channels", format.NumChannels)
	}

	if format.BlockAlign == 0 {
		return errors.Wrap(ErrValueOutOfRange, "block align is zero")
	}

	return nil
}

// shared reports whether another non-empty slot overlaps slot i.
func (s *SampleInfoChunk) shared(i int) bool {
	target := s.slots[i]

	for j, slot := range s.slots {
		if j == i || slot.Start >= slot.End {
			continue
		}

		if slot.Start < target.End && target.Start < slot.End {
			return true
		}
	}

	return false
}
