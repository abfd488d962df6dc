package esx

// RawChunk is a framed RIFF chunk: identifier, declared payload size and
// payload. The pad byte that follows odd sized payloads is not part of Data.
type RawChunk struct {
	ID [4]byte
	// Size is the declared payload length. It must equal len(Data) when the
	// chunk is encoded.
	Size uint32
	Data []byte
	// Offset is the position of the chunk header in the stream it was
	// decoded from. It is informational only and ignored on encode.
	Offset int
}

// NewRawChunk returns a chunk whose Size matches data.
func NewRawChunk(id [4]byte, data []byte) RawChunk {
	return RawChunk{ID: id, Size: uint32(len(data)), Data: data}
}

func (c RawChunk) Clone() RawChunk {
	out := c
	out.Data = append([]byte(nil), c.Data...)

	return out
}

func cloneRawChunks(chunks []RawChunk) []RawChunk {
	if len(chunks) == 0 {
		return nil
	}

	out := make([]RawChunk, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Clone()
	}

	return out
}

// Kind is the typed variant a chunk identifier classifies to.
type Kind int

const (
	KindUnknown Kind = iota
	KindFormat
	KindSampleData
	KindPatternMap
	KindSampleInfo
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindSampleData:
		return "sample data"
	case KindPatternMap:
		return "pattern map"
	case KindSampleInfo:
		return "sample info"
	default:
		return "unknown"
	}
}

// Chunk is a classified child of a document's container.
type Chunk interface {
	ID() [4]byte
	Kind() Kind
	// RawChunk rebuilds the framed chunk from the typed fields.
	RawChunk() RawChunk
}
