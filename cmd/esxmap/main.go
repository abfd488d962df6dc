// This command line tool edits the pattern map of a pattern file in a safe
// way. The edited copy is stored in the esxmap folder next to the original
// file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/esx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errNothingToDo = errors.New("pass -row with -field and -value, or -append")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("esxmap", flag.ContinueOnError)

	path := flagSet.String("file", "", "Path to the pattern file to edit")
	row := flagSet.Int("row", -1, "Index of the row to edit")
	field := flagSet.String("field", "destination", "Column to edit: source or destination")
	value := flagSet.Int("value", 0, "New value of the edited field")
	appendRow := flagSet.String("append", "", "Row to add at the end, as source:destination")
	output := flagSet.String("output", "", "Where to write the result, defaults to esxmap/<name> next to the file")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errors.New("you need to pass -file to indicate what file to edit")
	}

	if *row < 0 && *appendRow == "" {
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

	table := doc.AddPatternMapTable()

	if *row >= 0 {
		f, err := esx.ParseField(*field)
		if err != nil {
			return err
		}

		if err := table.Set(*row, f, *value); err != nil {
			return errors.Wrapf(err, "row %d", *row)
		}

		logrus.WithFields(logrus.Fields{"row": *row, "field": f, "value": *value}).Debug("edited pattern map row")
	}

	if *appendRow != "" {
		pm, err := parseRow(*appendRow)
		if err != nil {
			return err
		}

		index, err := table.Append(pm)
		if err != nil {
			return errors.Wrapf(err, "append %q", *appendRow)
		}

		logrus.WithField("row", index).Debug("appended pattern map row")
	}

	result, err := doc.Save()
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		outputDir := filepath.Join(filepath.Dir(*path), "esxmap")
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", outputDir)
		}

		outPath = filepath.Join(outputDir, filepath.Base(*path))
	}

	if err := os.WriteFile(outPath, result, 0o644); err != nil {
		return errors.Wrapf(err, "couldn't write %s", outPath)
	}

	fmt.Fprintf(out, "Pattern map has %d rows, file available at %s\n", table.RowCount(), outPath)

	return nil
}

// parseRow reads "source:destination".
func parseRow(s string) (esx.PatternMap, error) {
	src, dst, ok := strings.Cut(s, ":")
	if !ok {
		return esx.PatternMap{}, errors.Errorf("row %q is not source:destination", s)
	}

	source, err := strconv.Atoi(strings.TrimSpace(src))
	if err != nil {
		return esx.PatternMap{}, errors.Wrapf(err, "row %q", s)
	}

	destination, err := strconv.Atoi(strings.TrimSpace(dst))
	if err != nil {
		return esx.PatternMap{}, errors.Wrapf(err, "row %q", s)
	}

	return esx.PatternMap{Source: source, Destination: destination}, nil
}
