package main

import (
	"flag"
	"os"

	"github.com/cwbudde/esx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("esxnew", flag.ContinueOnError)

	output := flagSet.String("output", "pattern.wav", "filename to write to")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")
	bitDepth := flagSet.Int("bits", 16, "bits per sample")
	numChans := flagSet.Int("channels", 1, "number of channels")
	rows := flagSet.Int("rows", 16, "number of identity rows in the pattern map")
	slots := flagSet.Int("slots", 0, "number of empty sample slots, 0 leaves the slot table out")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *rows < 0 || *rows > esx.MaxPatternMapValue+1 {
		return errors.Wrapf(esx.ErrValueOutOfRange, "%d rows", *rows)
	}

	switch *bitDepth {
	case 8, 16, 24, 32:
	default:
		return errors.Wrapf(esx.ErrUnsupportedEncoding, "%d bits per sample", *bitDepth)
	}

	if *slots < 0 {
		return errors.Wrapf(esx.ErrValueOutOfRange, "%d slots", *slots)
	}

	if *sampleRate <= 0 || *numChans <= 0 {
		return errors.Wrapf(esx.ErrValueOutOfRange, "rate %d, channels %d", *sampleRate, *numChans)
	}

	format := esx.NewPCMFormat(*sampleRate, *bitDepth, *numChans)

	logrus.WithFields(logrus.Fields{
		"rate":     *sampleRate,
		"bits":     *bitDepth,
		"channels": *numChans,
		"rows":     *rows,
		"slots":    *slots,
	}).Info("generating pattern file")

	doc := esx.New(format)

	table := doc.PatternMapTable()
	for i := 0; i < *rows; i++ {
		if _, err := table.Append(esx.PatternMap{Source: i, Destination: i}); err != nil {
			return err
		}
	}

	if *slots > 0 {
		doc.AddSampleInfos(*slots)
	}

	data, err := doc.Save()
	if err != nil {
		return err
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return errors.Wrapf(err, "error creating %s", *output)
	}

	return nil
}
