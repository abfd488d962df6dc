package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/esx"
)

func writeFixture(t *testing.T) string {
	t.Helper()

	doc := esx.New(esx.NewPCMFormat(8000, 8, 1))

	table := doc.PatternMapTable()
	for _, row := range []esx.PatternMap{{Source: 0, Destination: 1}, {Source: 2, Destination: 3}} {
		if _, err := table.Append(row); err != nil {
			t.Fatal(err)
		}
	}

	data, err := doc.Save()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "pattern.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunRequiresPath(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, &out)
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunPrintsDocument(t *testing.T) {
	var outBuf bytes.Buffer

	err := run([]string{writeFixture(t)}, &outBuf)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := outBuf.String()
	checks := []string{
		"Form: WAVE",
		`"fmt " 16 bytes (format)`,
		`"pmap" 12 bytes (pattern map)`,
		"Format: tag 1, 1 ch, 8000 Hz, 8 bits",
		"Pattern map 0: 2 rows",
		"row [1]:\t2 -> 3",
	}

	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Fatalf("expected output to contain %q\nfull output:\n%s", c, out)
		}
	}
}

func TestRunPrintsSampleSlots(t *testing.T) {
	doc := esx.New(esx.NewPCMFormat(8000, 16, 1))
	doc.AddSampleInfos(2)

	if err := doc.ImportSampleSlot(1, "Café", []byte{1, 0, 2, 0}, esx.NewPCMFormat(8000, 16, 1)); err != nil {
		t.Fatal(err)
	}

	data, err := doc.Save()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "kit.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var outBuf bytes.Buffer

	if err := run([]string{path}, &outBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := outBuf.String()
	for _, c := range []string{
		`"smpi" 68 bytes (sample info)`,
		"Sample slots: 2",
		"slot [1]:\t\"Café\" 0..4 loop 0, 8000 Hz, tune 0, level 100, stereo false",
	} {
		if !strings.Contains(out, c) {
			t.Fatalf("expected output to contain %q\nfull output:\n%s", c, out)
		}
	}
}

func TestRunInvalidPath(t *testing.T) {
	var outBuf bytes.Buffer

	if err := run([]string{"/nonexistent/path.wav"}, &outBuf); err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestRunRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	var outBuf bytes.Buffer

	err := run([]string{path}, &outBuf)
	if !errors.Is(err, esx.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}
