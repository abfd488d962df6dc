// Package esx reads and edits sampler pattern files stored as RIFF/WAVE
// containers with vendor extension chunks.
//
// A file is decoded into a Document whose children are classified by
// identifier:
//
//   - "fmt " becomes a *FormatChunk
//   - "data" becomes a *SampleData
//   - "pmap" becomes a *PatternMapChunk (source/destination routing rows)
//   - "smpi" becomes a *SampleInfoChunk (per slot sample metadata)
//   - anything else becomes an *UnknownChunk kept byte for byte
//
// Saving a Document that was not edited reproduces the input exactly.
// Pattern map rows are edited through PatternMapTable:
//
//	doc, err := esx.Open(data)
//	if err != nil {
//		return err
//	}
//	table := doc.PatternMapTable()
//	if err := table.Set(0, esx.FieldDestination, 5); err != nil {
//		return err
//	}
//	out, err := doc.Save()
//
// Sample slots are cleared with DeleteSampleSlot and filled with
// ImportSampleSlot. Slot names keep their stored bytes; SampleInfo.Title
// decodes them from Windows-1252.
//
// The vendor chunk layouts (identifiers, count prefix and record widths) are
// this package's own schema and have not been checked against files written
// by the hardware.
//
// Nothing in the package locks; guard a Document with a single mutex if it
// is shared between goroutines.
package esx
