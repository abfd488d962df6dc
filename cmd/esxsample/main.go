// This command line tool deletes or imports the sample of one slot of a
// pattern file. The edited copy is stored in the esxsample folder next to
// the original file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/esx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errNothingToDo = errors.New("pass -delete or -import with -slot")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("esxsample", flag.ContinueOnError)

	path := flagSet.String("file", "", "Path to the pattern file to edit")
	slot := flagSet.Int("slot", -1, "Index of the sample slot to edit")
	del := flagSet.Bool("delete", false, "Empty the slot and zero its sample bytes")
	importPath := flagSet.String("import", "", "WAV file whose PCM data goes into the slot")
	name := flagSet.String("name", "", "Slot name, defaults to the first 8 characters of the imported file name")
	output := flagSet.String("output", "", "Where to write the result, defaults to esxsample/<name> next to the file")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errors.New("you need to pass -file to indicate what file to edit")
	}

	if *slot < 0 || *del == (*importPath != "") {
		return errNothingToDo
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", *path)
	}

	doc, err := esx.Open(data)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", *path)
	}

	if *del {
		if err := doc.DeleteSampleSlot(*slot); err != nil {
			return errors.Wrapf(err, "delete slot %d", *slot)
		}
	} else {
		if err := importSample(doc, *slot, *importPath, *name); err != nil {
			return err
		}
	}

	result, err := doc.Save()
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		outputDir := filepath.Join(filepath.Dir(*path), "esxsample")
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", outputDir)
		}

		outPath = filepath.Join(outputDir, filepath.Base(*path))
	}

	if err := os.WriteFile(outPath, result, 0o644); err != nil {
		return errors.Wrapf(err, "couldn't write %s", outPath)
	}

	info, _ := doc.SampleInfos().Get(*slot)
	fmt.Fprintf(out, "Slot %d is %q (%d..%d), file available at %s\n", *slot, info.Title(), info.Start, info.End, outPath)

	return nil
}

// importSample reads a plain WAV file; it is a RIFF/WAVE container too, so
// the same decoder serves.
func importSample(doc *esx.Document, slot int, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	wav, err := esx.Open(data)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}

	if name == "" {
		name = defaultName(path)
	}

	logrus.WithFields(logrus.Fields{"slot": slot, "source": path, "name": name}).Debug("importing sample")

	if err := doc.ImportSampleSlot(slot, name, wav.SampleData().Bytes(), wav.Format()); err != nil {
		return errors.Wrapf(err, "import %s into slot %d", path, slot)
	}

	return nil
}

// defaultName is the file stem cut to esx.SampleNameLen runes.
func defaultName(path string) string {
	stem := []rune(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if len(stem) > esx.SampleNameLen {
		stem = stem[:esx.SampleNameLen]
	}

	return string(stem)
}
