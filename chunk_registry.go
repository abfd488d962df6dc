package esx

import (
	"github.com/go-audio/riff"
)

// ChunkHandler is a typed handler for chunks of a RIFF/WAVE container.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte) bool
	Decode(ch *riff.Chunk) (Chunk, error)
}

// ChunkRegistry resolves chunk identifiers to handlers. The first handler
// claiming an identifier wins; identifiers nobody claims classify as
// UnknownChunk.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

var defaultRegistry = NewChunkRegistry()

// NewChunkRegistry returns a registry with the fmt, data, pattern map and
// sample info handlers.
func NewChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&fmtChunkHandler{},
			&dataChunkHandler{},
			&patternMapChunkHandler{},
			&sampleInfoChunkHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Classify turns a raw chunk into its typed variant. Unknown identifiers
// are never an error.
func (r *ChunkRegistry) Classify(c RawChunk) (Chunk, error) {
	if r != nil {
		for _, handler := range r.handlers {
			if !handler.CanHandle(c.ID) {
				continue
			}

			typed, err := handler.Decode(rawToRiff(c))
			if err != nil {
				return nil, asParseError(err, c.Offset, c.ID)
			}

			return typed, nil
		}
	}

	return NewUnknownChunk(c), nil
}

// Classify uses the default registry.
func Classify(c RawChunk) (Chunk, error) {
	return defaultRegistry.Classify(c)
}

type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.FmtID
}

func (h *fmtChunkHandler) Decode(ch *riff.Chunk) (Chunk, error) {
	return decodeFormat(ch)
}

type dataChunkHandler struct{}

func (h *dataChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == riff.DataFormatID
}

func (h *dataChunkHandler) Decode(ch *riff.Chunk) (Chunk, error) {
	return decodeSampleData(ch)
}

type patternMapChunkHandler struct{}

func (h *patternMapChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDPatternMap
}

func (h *patternMapChunkHandler) Decode(ch *riff.Chunk) (Chunk, error) {
	rows, err := decodePatternMap(ch)
	if err != nil {
		return nil, err
	}

	return &PatternMapChunk{rows: rows}, nil
}

type sampleInfoChunkHandler struct{}

func (h *sampleInfoChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDSampleInfo
}

func (h *sampleInfoChunkHandler) Decode(ch *riff.Chunk) (Chunk, error) {
	slots, err := decodeSampleInfo(ch)
	if err != nil {
		return nil, err
	}

	return &SampleInfoChunk{slots: slots}, nil
}
