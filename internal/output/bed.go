// Package output provides BED12 output formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/bed12/internal/bed12"
)

// BedWriter writes transcripts as tab-delimited BED12 rows without a header.
type BedWriter struct {
	w     *bufio.Writer
	count int
}

// NewBedWriter creates a new BED12 writer.
func NewBedWriter(w io.Writer) *BedWriter {
	return &BedWriter{w: bufio.NewWriter(w)}
}

// Write writes a single transcript.
func (bw *BedWriter) Write(t bed12.Transcript) error {
	if _, err := bw.w.WriteString(strings.Join(t.Fields(), "\t") + "\n"); err != nil {
		return err
	}
	bw.count++
	return nil
}

// WriteAll writes transcripts in order and flushes.
func (bw *BedWriter) WriteAll(ts []bed12.Transcript) error {
	for _, t := range ts {
		if err := bw.Write(t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Count returns the number of rows written so far.
func (bw *BedWriter) Count() int {
	return bw.count
}

// Flush flushes any buffered data to the underlying writer.
func (bw *BedWriter) Flush() error {
	return bw.w.Flush()
}
