package esx

import (
	"github.com/go-audio/riff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Document is an opened pattern file: a RIFF container whose children are
// classified into typed chunks. A Document is not safe for concurrent use.
type Document struct {
	formType [4]byte
	chunks   []Chunk
	// trailer holds bytes found after the top level chunk.
	trailer []byte
	dirty   bool
	// registry classifies chunks passed to AddChunk.
	registry *ChunkRegistry
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	registry     *ChunkRegistry
	strictFormat bool
}

// WithRegistry classifies chunks with r instead of the default handlers.
func WithRegistry(r *ChunkRegistry) OpenOption {
	return func(cfg *openConfig) {
		cfg.registry = r
	}
}

// WithStrictFormat makes Open fail when a fmt chunk doesn't validate.
func WithStrictFormat() OpenOption {
	return func(cfg *openConfig) {
		cfg.strictFormat = true
	}
}

// Open decodes a complete pattern file. On error no Document is returned
// and the error matches ErrParse.
func Open(data []byte, opts ...OpenOption) (*Document, error) {
	cfg := openConfig{registry: defaultRegistry}
	for _, opt := range opts {
		opt(&cfg)
	}

	top, n, err := DecodeChunk(data, 0)
	if err != nil {
		return nil, err
	}

	if top.ID != riff.RiffID {
		return nil, newParseError(0, top.ID, ErrMalformedContainer, "expected a RIFF stream")
	}

	container, err := ParseContainer(top)
	if err != nil {
		return nil, err
	}

	doc := &Document{formType: container.FormType, registry: cfg.registry}

	for _, child := range container.Children {
		typed, err := cfg.registry.Classify(child)
		if err != nil {
			return nil, err
		}

		switch c := typed.(type) {
		case *UnknownChunk:
			logrus.WithFields(logrus.Fields{
				"id":     string(child.ID[:]),
				"offset": child.Offset,
				"size":   child.Size,
			}).Debug("preserving unknown chunk")
		case *FormatChunk:
			if cfg.strictFormat {
				if err := c.Validate(); err != nil {
					return nil, asParseError(err, child.Offset, child.ID)
				}
			}
		}

		doc.chunks = append(doc.chunks, typed)
	}

	if n < len(data) {
		doc.trailer = append([]byte(nil), data[n:]...)
	}

	doc.link()

	return doc, nil
}

// New returns a RIFF/WAVE document holding format, an empty data chunk and
// an empty pattern map. A nil format leaves the fmt chunk out.
func New(format *FormatChunk) *Document {
	doc := &Document{formType: riff.WavFormatID, dirty: true, registry: defaultRegistry}
	if format != nil {
		doc.chunks = append(doc.chunks, format.Clone())
	}

	doc.chunks = append(doc.chunks, NewSampleData(nil), &PatternMapChunk{})
	doc.link()

	return doc
}

// link sets back references: data chunks see the first fmt chunk, tables
// see the document.
func (d *Document) link() {
	format := d.format()

	for _, c := range d.chunks {
		switch typed := c.(type) {
		case *SampleData:
			typed.format = format
		case *PatternMapChunk:
			typed.owner = d
		case *SampleInfoChunk:
			typed.owner = d
		}
	}
}

// Save serializes the document and clears the dirty flag. Chunks that were
// not edited come out byte for byte as they were read.
func (d *Document) Save() ([]byte, error) {
	container := &ContainerChunk{
		ID:       riff.RiffID,
		FormType: d.formType,
		Children: make([]RawChunk, 0, len(d.chunks)),
	}

	for _, c := range d.chunks {
		container.Children = append(container.Children, c.RawChunk())
	}

	top, err := container.RawChunk()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build RIFF chunk")
	}

	out, err := AppendChunk(make([]byte, 0, FramedSize(top.Size)+len(d.trailer)), top)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode RIFF chunk")
	}

	out = append(out, d.trailer...)
	d.dirty = false

	return out, nil
}

// Dirty reports whether the document changed since it was opened or last
// saved.
func (d *Document) Dirty() bool {
	return d.dirty
}

// FormType returns the form type of the RIFF container, usually WAVE.
func (d *Document) FormType() [4]byte {
	return d.formType
}

// Chunks returns the classified children in file order.
func (d *Document) Chunks() []Chunk {
	return append([]Chunk(nil), d.chunks...)
}

// Format returns a copy of the first fmt chunk, or nil.
func (d *Document) Format() *FormatChunk {
	return d.format().Clone()
}

// SetFormat replaces the first fmt chunk, or inserts one at the front.
func (d *Document) SetFormat(f *FormatChunk) {
	replacement := f.Clone()

	for i, c := range d.chunks {
		if c.Kind() == KindFormat {
			d.chunks[i] = replacement
			d.dirty = true
			d.link()

			return
		}
	}

	d.chunks = append([]Chunk{replacement}, d.chunks...)
	d.dirty = true
	d.link()
}

func (d *Document) format() *FormatChunk {
	for _, c := range d.chunks {
		if f, ok := c.(*FormatChunk); ok {
			return f
		}
	}

	return nil
}

// SampleData returns the first data chunk, or nil.
func (d *Document) SampleData() *SampleData {
	for _, c := range d.chunks {
		if s, ok := c.(*SampleData); ok {
			return s
		}
	}

	return nil
}

// PatternMapTable returns the table of the first pattern map chunk, or nil
// when the document has none.
func (d *Document) PatternMapTable() *PatternMapTable {
	for _, c := range d.chunks {
		if p, ok := c.(*PatternMapChunk); ok {
			return p.Table()
		}
	}

	return nil
}

// PatternMapTables returns one table per pattern map chunk, in file order.
func (d *Document) PatternMapTables() []*PatternMapTable {
	var out []*PatternMapTable

	for _, c := range d.chunks {
		if p, ok := c.(*PatternMapChunk); ok {
			out = append(out, p.Table())
		}
	}

	return out
}

// AddPatternMapTable returns the existing table or appends an empty pattern
// map chunk and returns its table.
func (d *Document) AddPatternMapTable() *PatternMapTable {
	if t := d.PatternMapTable(); t != nil {
		return t
	}

	p := &PatternMapChunk{owner: d}
	d.chunks = append(d.chunks, p)
	d.dirty = true

	return p.Table()
}

// SampleInfos returns the first sample info chunk, or nil.
func (d *Document) SampleInfos() *SampleInfoChunk {
	for _, c := range d.chunks {
		if s, ok := c.(*SampleInfoChunk); ok {
			return s
		}
	}

	return nil
}

// Validate checks the fmt chunk and that every sample slot lies inside the
// data chunk.
func (d *Document) Validate() error {
	f := d.format()
	if err := f.Validate(); err != nil {
		return err
	}

	infos := d.SampleInfos()
	size := d.SampleData().Len()

	for i := 0; i < infos.Len(); i++ {
		slot := infos.slots[i]
		if slot.Start > slot.End || int64(slot.End) > int64(size) {
			return errors.Wrapf(ErrIndexOutOfRange, "slot %d spans %d..%d of %d data bytes", i, slot.Start, slot.End, size)
		}
	}

	return nil
}
