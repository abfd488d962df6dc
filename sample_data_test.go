package esx

import (
	"errors"
	"testing"
)

func TestSampleDataAccess(t *testing.T) {
	input := buildRIFF(t, "WAVE",
		testChunk{id: "fmt ", data: fmtPayload(FormatPCM, 2, 8000, 16)},
		testChunk{id: "data", data: []byte{1, 0, 2, 0, 3, 0, 4, 0, 5}},
	)

	doc, err := Open(input)
	if err != nil {
		t.Fatal(err)
	}

	data := doc.SampleData()
	if data == nil {
		t.Fatal("missing data chunk")
	}

	if data.Len() != 9 {
		t.Fatalf("len %d, want 9", data.Len())
	}

	if data.Frames() != 2 {
		t.Fatalf("frames %d, want 2", data.Frames())
	}

	b, err := data.At(8)
	if err != nil || b != 5 {
		t.Fatalf("At(8) = %d, %v", b, err)
	}

	if _, err := data.At(9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	s, err := data.Slice(2, 4)
	if err != nil || len(s) != 2 || s[0] != 2 {
		t.Fatalf("Slice(2,4) = %v, %v", s, err)
	}

	if _, err := data.Slice(4, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	f := data.Format()
	if f == nil || f.NumChannels != 2 {
		t.Fatalf("back reference to fmt chunk missing: %+v", f)
	}

	f.NumChannels = 6
	if doc.Format().NumChannels != 2 {
		t.Fatal("format back reference must be read only")
	}
}

func TestSampleDataIntBuffer(t *testing.T) {
	tests := []struct {
		name string
		bits uint16
		pcm  []byte
		want []int
	}{
		{name: "8 bit", bits: 8, pcm: []byte{0, 128, 255}, want: []int{0, 128, 255}},
		{name: "16 bit", bits: 16, pcm: []byte{0xFF, 0x7F, 0x00, 0x80, 0x01}, want: []int{32767, -32768}},
		{name: "24 bit", bits: 24, pcm: []byte{0xFF, 0xFF, 0xFF, 0x01, 0x00, 0x00}, want: []int{-1, 1}},
		{name: "32 bit", bits: 32, pcm: []byte{0xFE, 0xFF, 0xFF, 0xFF}, want: []int{-2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := buildRIFF(t, "WAVE",
				testChunk{id: "fmt ", data: fmtPayload(FormatPCM, 1, 8000, tt.bits)},
				testChunk{id: "data", data: tt.pcm},
			)

			doc, err := Open(input)
			if err != nil {
				t.Fatal(err)
			}

			buf, err := doc.SampleData().IntBuffer()
			if err != nil {
				t.Fatal(err)
			}

			if buf.SourceBitDepth != int(tt.bits) || buf.Format.SampleRate != 8000 {
				t.Fatalf("buffer header %+v", buf)
			}

			if len(buf.Data) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(buf.Data), len(tt.want))
			}

			for i := range tt.want {
				if buf.Data[i] != tt.want[i] {
					t.Fatalf("sample %d: got %d want %d", i, buf.Data[i], tt.want[i])
				}
			}
		})
	}
}

func TestSampleDataIntBufferRejects(t *testing.T) {
	if _, err := NewSampleData([]byte{1, 2}).IntBuffer(); !errors.Is(err, ErrNoFormat) {
		t.Fatalf("expected ErrNoFormat, got %v", err)
	}

	input := buildRIFF(t, "WAVE",
		testChunk{id: "fmt ", data: fmtPayload(FormatMuLaw, 1, 8000, 8)},
		testChunk{id: "data", data: make([]byte, 8)},
	)

	doc, err := Open(input)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := doc.SampleData().IntBuffer(); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
}


func TestSampleDataSubKeepsFormat(t *testing.T) {
	doc, err := Open(buildRIFF(t, "WAVE",
		testChunk{id: "fmt ", data: fmtPayload(FormatPCM, 1, 8000, 16)},
		testChunk{id: "data", data: []byte{1, 0, 2, 0, 3, 0}},
	))
	if err != nil {
		t.Fatal(err)
	}

	sub, err := doc.SampleData().Sub(2, 6)
	if err != nil {
		t.Fatal(err)
	}

	if sub.Frames() != 2 || sub.Format().BitsPerSample != 16 {
		t.Fatalf("sub frames %d, format %+v", sub.Frames(), sub.Format())
	}

	buf, err := sub.IntBuffer()
	if err != nil || buf.Data[0] != 2 || buf.Data[1] != 3 {
		t.Fatalf("IntBuffer() = %+v, %v", buf, err)
	}

	if _, err := doc.SampleData().Sub(4, 8); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}
