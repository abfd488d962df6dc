package esx

import (
	"math"

	"github.com/go-audio/riff"
	"github.com/pkg/errors"
)

const formTypeSize = 4

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}

	errContainerTooLarge = errors.New("container payload exceeds 4GiB")
)

// ContainerChunk is a RIFF or LIST chunk split into its form type and
// children.
type ContainerChunk struct {
	ID       [4]byte
	Size     uint32
	FormType [4]byte
	Children []RawChunk
	Offset   int
}

// IsContainerID reports whether id names a chunk whose payload holds
// sub-chunks.
func IsContainerID(id [4]byte) bool {
	return id == riff.RiffID || id == CIDList
}

// ParseContainer splits a RIFF or LIST chunk into its children.
func ParseContainer(c RawChunk) (*ContainerChunk, error) {
	if !IsContainerID(c.ID) {
		return nil, newParseError(c.Offset, c.ID, ErrMalformedContainer, "not a container identifier")
	}

	if len(c.Data) < formTypeSize {
		return nil, newParseError(c.Offset, c.ID, ErrMalformedContainer,
			"payload of %d bytes can't hold a form type", len(c.Data))
	}

	out := &ContainerChunk{
		ID:     c.ID,
		Size:   c.Size,
		Offset: c.Offset,
	}
	copy(out.FormType[:], c.Data[:formTypeSize])

	base := c.Offset + chunkHeaderSize
	pos := formTypeSize

	for pos < len(c.Data) {
		if rest := len(c.Data) - pos; rest < chunkHeaderSize {
			return nil, newParseError(base+pos, c.ID, ErrMalformedContainer,
				"%d trailing bytes can't hold a chunk header", rest)
		}

		child, n, err := decodeChunk(c.Data, pos, base)
		if err != nil {
			return nil, err
		}

		out.Children = append(out.Children, child)
		pos += n
	}

	return out, nil
}

// RawChunk rebuilds the container payload from the form type and the framed
// children. Size is recomputed; each child must be self consistent.
func (c *ContainerChunk) RawChunk() (RawChunk, error) {
	size := formTypeSize
	for _, child := range c.Children {
		size += FramedSize(child.Size)
	}

	if int64(size) > math.MaxUint32 {
		return RawChunk{}, errContainerTooLarge
	}

	payload := make([]byte, 0, size)
	payload = append(payload, c.FormType[:]...)

	for _, child := range c.Children {
		var err error

		payload, err = AppendChunk(payload, child)
		if err != nil {
			return RawChunk{}, err
		}
	}

	return RawChunk{ID: c.ID, Size: uint32(len(payload)), Data: payload, Offset: c.Offset}, nil
}
