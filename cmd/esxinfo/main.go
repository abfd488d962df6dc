// This tool prints the chunk layout, fmt fields, pattern map, sample slots
// and tags of a pattern file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/esx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	logrus.Fatal(err)
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("esxinfo", flag.ContinueOnError)
	verbose := flagSet.Bool("v", false, "log debug details while decoding")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	data, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		return err
	}

	doc, err := esx.Open(data)
	if err != nil {
		return err
	}

	form := doc.FormType()
	fmt.Fprintf(out, "Form: %s\n", form[:])
	fmt.Fprintln(out, "Chunks:")

	chunks := doc.Chunks()
	for i, c := range chunks {
		raw := c.RawChunk()
		fmt.Fprintf(out, "\t[%d] %q %d bytes (%s)\n", i, raw.ID[:], raw.Size, c.Kind())
	}

	if f := doc.Format(); f != nil {
		fmt.Fprintf(out, "Format: tag %d, %d ch, %d Hz, %d bits, block align %d, %d bytes/s\n",
			f.EffectiveFormatTag(), f.NumChannels, f.SampleRate, f.BitsPerSample, f.BlockAlign, f.AvgBytesPerSec)

		if err := f.Validate(); err != nil {
			fmt.Fprintf(out, "Format warning: %v\n", err)
		}
	} else {
		fmt.Fprintln(out, "Format: none")
	}

	if data := doc.SampleData(); data != nil {
		fmt.Fprintf(out, "Sample data: %d bytes, %d frames\n", data.Len(), data.Frames())
	}

	for n, table := range doc.PatternMapTables() {
		fmt.Fprintf(out, "Pattern map %d: %d rows\n", n, table.RowCount())

		for i, row := range table.Rows() {
			fmt.Fprintf(out, "\trow [%d]:\t%d -> %d\n", i, row.Source, row.Destination)
		}
	}

	if infos := doc.SampleInfos(); infos != nil {
		fmt.Fprintf(out, "Sample slots: %d\n", infos.Len())

		for i, s := range infos.Slots() {
			fmt.Fprintf(out, "\tslot [%d]:\t%q %d..%d loop %d, %d Hz, tune %d, level %d, stereo %t\n",
				i, s.Title(), s.Start, s.End, s.LoopStart, s.SampleRate, s.Tune, s.PlayLevel, s.Stereo())
		}
	}

	info, err := doc.Info()
	if err != nil {
		return err
	}

	if info != nil {
		fmt.Fprintf(out, "Title: %s\nArtist: %s\nSoftware: %s\nComments: %s\n",
			info.Title, info.Artist, info.Software, info.Comments)
	}

	sampler, err := doc.SamplerInfo()
	if err != nil {
		return err
	}

	if sampler != nil {
		fmt.Fprintf(out, "Sampler: unity note %d, %d loops\n", sampler.MIDIUnityNote, len(sampler.Loops))

		for i, loop := range sampler.Loops {
			fmt.Fprintf(out, "\tloop [%d]:\t%d..%d\n", i, loop.Start, loop.End)
		}
	}

	return nil
}
