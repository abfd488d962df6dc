// This tool exports the sample data of a pattern file as an AIFF file stored
// in the same folder as the source.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/esx"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errNoSampleData = errors.New("file has no data chunk")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("esxtoaiff", flag.ContinueOnError)
	flagPath := flagSet.String("path", "", "The path to the pattern file to export")
	flagSlot := flagSet.Int("slot", -1, "Export only this sample slot instead of the whole data chunk")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *flagPath == "" {
		return errors.New("you must set the -path flag")
	}

	sourcePath := *flagPath
	if strings.HasPrefix(sourcePath, "~/") {
		usr, err := user.Current()
		if err != nil {
			return errors.Wrap(err, "failed to get the user home directory")
		}

		sourcePath = strings.Replace(sourcePath, "~", usr.HomeDir, 1)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return errors.Wrapf(err, "invalid path %s", sourcePath)
	}

	doc, err := esx.Open(data)
	if err != nil {
		return err
	}

	samples := doc.SampleData()
	if samples == nil {
		return errNoSampleData
	}

	if *flagSlot >= 0 {
		samples, err = doc.SampleSlotData(*flagSlot)
		if err != nil {
			return err
		}
	}

	buf, err := samples.IntBuffer()
	if err != nil {
		return errors.Wrap(err, "cannot export sample data")
	}

	toAIFFBuffer(buf)

	base := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))]

	outPath := base + ".aif"
	if *flagSlot >= 0 {
		outPath = fmt.Sprintf("%s-%d.aif", base, *flagSlot)
	}

	if err := writeAIFF(outPath, buf); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"samples": len(buf.Data),
		"rate":    buf.Format.SampleRate,
		"bits":    buf.SourceBitDepth,
	}).Debug("exported sample data")

	fmt.Fprintf(out, "Sample data exported to %s\n", outPath)

	return nil
}

func writeAIFF(path string, buf *audio.IntBuffer) (err error) {
	outFile, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}

	defer func() {
		cerr := outFile.Close()
		if cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close output file")
		}
	}()

	encoder := aiff.NewEncoder(outFile, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)
	if err := encoder.Write(buf); err != nil {
		return errors.Wrap(err, "failed to write audio buffer")
	}

	return encoder.Close()
}

// toAIFFBuffer converts 8 bit samples from unsigned WAV storage to the
// signed form AIFF stores. Wider samples are already signed.
func toAIFFBuffer(buf *audio.IntBuffer) {
	if buf.SourceBitDepth > 8 {
		return
	}

	for i, v := range buf.Data {
		buf.Data[i] = v - 128
	}
}
