package esx

// UnknownChunk keeps a chunk with an unrecognized identifier byte for byte.
type UnknownChunk struct {
	raw RawChunk
}

// NewUnknownChunk wraps a copy of c.
func NewUnknownChunk(c RawChunk) *UnknownChunk {
	return &UnknownChunk{raw: c.Clone()}
}

func (u *UnknownChunk) ID() [4]byte { return u.raw.ID }

func (u *UnknownChunk) Kind() Kind { return KindUnknown }

// RawChunk returns the stored chunk unchanged, declared size included.
func (u *UnknownChunk) RawChunk() RawChunk {
	return u.raw.Clone()
}

// Data returns a copy of the opaque payload.
func (u *UnknownChunk) Data() []byte {
	return append([]byte(nil), u.raw.Data...)
}
