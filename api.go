package esx

import "github.com/pkg/errors"

// RawChunks returns every child of the container in its framed form.
func (d *Document) RawChunks() []RawChunk {
	if d == nil {
		return nil
	}

	out := make([]RawChunk, 0, len(d.chunks))
	for _, c := range d.chunks {
		out = append(out, c.RawChunk())
	}

	return out
}

// UnknownChunks returns a copy of the chunks preserved without
// interpretation.
func (d *Document) UnknownChunks() []RawChunk {
	if d == nil {
		return nil
	}

	var out []RawChunk

	for _, c := range d.chunks {
		if u, ok := c.(*UnknownChunk); ok {
			out = append(out, u.raw)
		}
	}

	return cloneRawChunks(out)
}

// AddChunk classifies c with the handlers the document was opened with and
// appends it.
func (d *Document) AddChunk(c RawChunk) error {
	registry := d.registry
	if registry == nil {
		registry = defaultRegistry
	}

	typed, err := registry.Classify(c)
	if err != nil {
		return err
	}

	d.chunks = append(d.chunks, typed)
	d.dirty = true
	d.link()

	return nil
}

// RemoveChunk drops the child at index i.
func (d *Document) RemoveChunk(i int) error {
	if i < 0 || i >= len(d.chunks) {
		return errors.Wrapf(ErrIndexOutOfRange, "chunk %d of %d", i, len(d.chunks))
	}

	d.chunks = append(d.chunks[:i], d.chunks[i+1:]...)
	d.dirty = true
	d.link()

	return nil
}
