// Package convert runs the GTF/custom to BED12 conversion pipeline:
// read, aggregate, optionally expand strands and sort, then write.
package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/inodb/bed12/internal/bed12"
	"github.com/inodb/bed12/internal/custom"
	"github.com/inodb/bed12/internal/gtf"
	"github.com/inodb/bed12/internal/output"
	"github.com/inodb/bed12/internal/store"
)

// Input types.
const (
	TypeGTF  = "gtf"
	TypeCSV  = "csv"
	TypeXLSX = "xlsx"
)

// DetectInputType returns the input type implied by the file extension.
// A trailing ".gz" is ignored.
func DetectInputType(path string) (string, error) {
	lower := strings.ToLower(path)
	lower = strings.TrimSuffix(lower, ".gz")

	ext := lower[strings.LastIndex(lower, ".")+1:]
	switch ext {
	case TypeGTF, TypeCSV, TypeXLSX:
		return ext, nil
	}
	return "", &bed12.UnsupportedInputTypeError{Path: path, Type: ext}
}

// Result describes a conversion.
type Result struct {
	InputType   string
	Exons       int
	Transcripts []bed12.Transcript
}

// Converter runs conversions against a filesystem.
type Converter struct {
	fs     afero.Fs
	logger *zap.Logger
}

// New creates a converter reading and writing through fs.
func New(fs afero.Fs) *Converter {
	return &Converter{
		fs:     fs,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and diagnostic messages.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Run converts opts.Input and writes the BED12 file to opts.Output, and to the
// DuckDB database at opts.DBPath when set. The BED12 file is staged next to
// opts.Output and only moved into place once every sink has succeeded.
func (c *Converter) Run(opts Options) (Result, error) {
	res, err := c.Convert(opts)
	if err != nil {
		return Result{}, err
	}

	tmpPath, err := c.writeBedTemp(opts.Output, res.Transcripts)
	if err != nil {
		return Result{}, err
	}

	if opts.DBPath != "" {
		if err := c.writeDB(opts, res.Transcripts); err != nil {
			c.fs.Remove(tmpPath)
			return Result{}, err
		}
		c.logger.Info("transcripts stored", zap.String("db", opts.DBPath))
	}

	if err := c.fs.Rename(tmpPath, opts.Output); err != nil {
		c.fs.Remove(tmpPath)
		return Result{}, fmt.Errorf("rename output: %w", err)
	}
	c.logger.Info("BED12 written",
		zap.String("path", opts.Output),
		zap.Int("transcripts", len(res.Transcripts)))

	return res, nil
}

// Convert reads opts.Input and returns the transcripts that Run would write.
func (c *Converter) Convert(opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	typ, err := DetectInputType(opts.Input)
	if err != nil {
		return Result{}, err
	}
	c.logger.Info("converting input file to BED12",
		zap.String("input", opts.Input),
		zap.String("type", typ))

	exons, stranded, err := c.readExons(typ, opts)
	if err != nil {
		return Result{}, err
	}
	if len(exons) == 0 {
		return Result{}, &bed12.FormatError{Format: formatLabel(typ), Message: "no records found"}
	}

	transcripts, err := bed12.Aggregate(exons, stranded)
	if err != nil {
		return Result{}, err
	}
	if opts.PlusMinus {
		transcripts = bed12.ExpandStrands(transcripts)
	}
	if opts.Sort {
		bed12.SortByName(transcripts)
	}

	c.logger.Info("done",
		zap.Int("exons", len(exons)),
		zap.Int("transcripts", len(transcripts)))

	return Result{InputType: typ, Exons: len(exons), Transcripts: transcripts}, nil
}

func formatLabel(typ string) string {
	if typ == TypeGTF {
		return "GTF"
	}
	return "custom"
}

// readExons opens the input and dispatches on its type. stranded reports
// whether strand is part of the transcript identity.
func (c *Converter) readExons(typ string, opts Options) (exons []bed12.Exon, stranded bool, err error) {
	f, err := c.fs.Open(opts.Input)
	if err != nil {
		return nil, false, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	// Handle gzipped files
	if strings.HasSuffix(strings.ToLower(opts.Input), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, false, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		in = gz
	}

	if typ == TypeGTF {
		r := gtf.NewReader(opts.NameCol)
		r.SetFeature(opts.Feature)
		r.SetLogger(c.logger)
		exons, err = r.Read(in)
		return exons, true, err
	}

	var tbl *custom.Table
	if typ == TypeXLSX {
		tbl, err = custom.ReadXLSX(in)
	} else {
		tbl, err = custom.ReadDelimited(in, opts.Delimiter())
	}
	if err != nil {
		return nil, false, err
	}

	r := custom.NewReader(opts.NameCol)
	r.SetLogger(c.logger)
	return r.Exons(tbl, opts.PlusMinus)
}

// writeBedTemp writes ts to <path>.tmp and returns that path. The temporary
// file is removed again if writing fails.
func (c *Converter) writeBedTemp(path string, ts []bed12.Transcript) (tmpPath string, err error) {
	tmpPath = path + ".tmp"
	f, err := c.fs.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			c.fs.Remove(tmpPath)
		}
	}()

	var (
		w  io.Writer = f
		gz *gzip.Writer
	)
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := output.NewBedWriter(w).WriteAll(ts); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return "", fmt.Errorf("close gzip writer: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output: %w", err)
	}
	return tmpPath, nil
}

func (c *Converter) writeDB(opts Options, ts []bed12.Transcript) error {
	s, err := store.Open(c.fs, opts.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.WriteTranscripts(opts.Input, ts); err != nil {
		return err
	}

	fp, err := store.StatFile(c.fs, opts.Input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	return s.RecordSource(fp, len(ts))
}
