package esx

import (
	"bytes"
	"encoding/binary"
	"testing"
)

type testChunk struct {
	id   string
	data []byte
}

// buildRIFF frames chunks by hand so tests don't depend on the codec under
// test.
func buildRIFF(t *testing.T, form string, chunks ...testChunk) []byte {
	t.Helper()

	var body bytes.Buffer

	body.WriteString(form)

	for _, c := range chunks {
		body.Write(frameChunk(t, c.id, c.data))
	}

	return frameChunk(t, "RIFF", body.Bytes())
}

func frameChunk(t *testing.T, id string, data []byte) []byte {
	t.Helper()

	if len(id) != 4 {
		t.Fatalf("chunk id %q must be 4 bytes", id)
	}

	var b bytes.Buffer

	b.WriteString(id)

	if err := binary.Write(&b, binary.LittleEndian, uint32(len(data))); err != nil {
		t.Fatal(err)
	}

	b.Write(data)

	if len(data)%2 == 1 {
		b.WriteByte(0)
	}

	return b.Bytes()
}

func fmtPayload(formatTag, channels uint16, sampleRate uint32, bitsPerSample uint16) []byte {
	blockAlign := channels * ((bitsPerSample + 7) / 8)

	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, formatTag)
	_ = binary.Write(&b, binary.LittleEndian, channels)
	_ = binary.Write(&b, binary.LittleEndian, sampleRate)
	_ = binary.Write(&b, binary.LittleEndian, sampleRate*uint32(blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, blockAlign)
	_ = binary.Write(&b, binary.LittleEndian, bitsPerSample)

	return b.Bytes()
}

func patternMapPayload(count uint32, rows ...[2]uint16) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, count)

	for _, row := range rows {
		_ = binary.Write(&b, binary.LittleEndian, row)
	}

	return b.Bytes()
}

// minimalDocument is a WAVE container with an 8 kHz mono 8-bit fmt chunk
// and a two row pattern map [(0,1), (2,3)].
func minimalDocument(t *testing.T) []byte {
	t.Helper()

	return buildRIFF(t, "WAVE",
		testChunk{id: "fmt ", data: fmtPayload(FormatPCM, 1, 8000, 8)},
		testChunk{id: "pmap", data: patternMapPayload(2, [2]uint16{0, 1}, [2]uint16{2, 3})},
	)
}

func sampleName(t *testing.T, name string) [SampleNameLen]byte {
	t.Helper()

	b, err := SampleName(name)
	if err != nil {
		t.Fatal(err)
	}

	return b
}
