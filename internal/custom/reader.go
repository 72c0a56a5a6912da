package custom

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/bed12/internal/bed12"
)

// Recognized column names (compared lower-cased).
const (
	ColLocus      = "locus"
	ColChrom      = "chrom"
	ColExonStarts = "exon_starts"
	ColExonEnds   = "exon_ends"
	ColStrand     = "strand"
	ColScore      = "score"
)

// GeneratedNamePrefix prefixes the names given to rows when the table has
// no name column.
const GeneratedNamePrefix = "transID_"

var coordinateColumns = []string{ColChrom, ColExonStarts, ColExonEnds}

// Validate checks that t has either a locus column or all of chrom,
// exon_starts and exon_ends.
func Validate(t *Table) error {
	if t.Has(ColLocus) {
		return nil
	}
	var missing []string
	for _, c := range coordinateColumns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &bed12.FormatError{
		Format: formatName,
		Message: fmt.Sprintf(`A custom input file must contain either a "locus" column or "chrom", "exon_starts", and "exon_ends" columns (missing: %s)`,
			strings.Join(missing, ", ")),
	}
}

// Reader converts validated tables to exons.
type Reader struct {
	nameField string
	logger    *zap.Logger
}

// NewReader creates a reader that takes exon names from the nameField column.
func NewReader(nameField string) *Reader {
	return &Reader{
		nameField: strings.ToLower(nameField),
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for column-defaulting diagnostics.
func (r *Reader) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Exons converts every row of t. Missing names become transID_<row index>
// and a missing strand column reads as "." for every row. The returned
// stranded flag reports whether strand belongs in the transcript identity:
// it is false only when the strand column is absent and plusMinus expansion
// was requested.
func (r *Reader) Exons(t *Table, plusMinus bool) (exons []bed12.Exon, stranded bool, err error) {
	if err := Validate(t); err != nil {
		return nil, false, err
	}

	hasName := t.Has(r.nameField)
	hasStrand := t.Has(ColStrand)
	hasLocus := t.Has(ColLocus)
	stranded = hasStrand || !plusMinus

	if !hasName {
		r.logger.Debug("no name column, generating names", zap.String("column", r.nameField))
	}
	if !hasStrand {
		r.logger.Debug("no strand column, using unknown strand", zap.Bool("stranded_clustering", stranded))
	}

	exons = make([]bed12.Exon, 0, len(t.Rows))
	for i := range t.Rows {
		line := t.Lines[i]
		e := bed12.Exon{
			Name:   GeneratedNamePrefix + strconv.Itoa(i),
			Strand: bed12.StrandUnknown,
			Score:  t.Cell(i, ColScore),
		}
		if hasName {
			e.Name = t.Cell(i, r.nameField)
		}
		if s := t.Cell(i, ColStrand); s != "" {
			e.Strand = s
		}

		if hasLocus {
			e.Chrom, e.Start, e.End, err = parseLocusAt(t.Cell(i, ColLocus), line)
		} else {
			e.Chrom = t.Cell(i, ColChrom)
			e.Start, e.End, err = r.coordinates(t, i, line)
		}
		if err != nil {
			return nil, false, err
		}
		exons = append(exons, e)
	}

	return exons, stranded, nil
}

func (r *Reader) coordinates(t *Table, i, line int) (start, end int64, err error) {
	start, err = bed12.ParseInt(formatName, ColExonStarts, t.Cell(i, ColExonStarts), line)
	if err != nil {
		return 0, 0, err
	}
	end, err = bed12.ParseInt(formatName, ColExonEnds, t.Cell(i, ColExonEnds), line)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
