// Package gtf reads GTF annotation rows as exon intervals.
package gtf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/bed12/internal/bed12"
)

// NumColumns is the number of tab-delimited columns in a GTF row.
const NumColumns = 9

// Column indices of the fields a Reader consumes.
const (
	colChrom     = 0
	colFeature   = 2
	colStart     = 3
	colEnd       = 4
	colScore     = 5
	colStrand    = 6
	colAttribute = 8
)

const formatName = "GTF"

// Reader converts GTF rows to exons, naming each exon by one attribute.
type Reader struct {
	nameField string
	feature   string
	logger    *zap.Logger
}

// NewReader creates a reader that takes exon names from the nameField attribute.
func NewReader(nameField string) *Reader {
	return &Reader{
		nameField: nameField,
		logger:    zap.NewNop(),
	}
}

// SetFeature restricts reading to rows whose feature column equals feature.
// An empty feature keeps every row.
func (r *Reader) SetFeature(feature string) {
	r.feature = feature
}

// SetLogger sets the logger for skipped-row diagnostics.
func (r *Reader) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Read parses all rows from in. Comment and blank lines are skipped. Any row
// that does not have exactly nine columns fails the whole read with a
// *bed12.FormatError. Rows lacking the name attribute are skipped; if no row
// carries it, Read returns a *bed12.FieldNotFoundError listing every
// attribute key seen.
func (r *Reader) Read(in io.Reader) ([]bed12.Exon, error) {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for long attribute columns
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var (
		exons       []bed12.Exon
		keys        []string
		seenKeys    = make(map[string]bool)
		rows        int
		missingName int
		filtered    int
	)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != NumColumns {
			return nil, &bed12.FormatError{
				Format:  formatName,
				Line:    lineNum,
				Message: "GTF files must have 9 columns",
			}
		}
		rows++

		if r.feature != "" && fields[colFeature] != r.feature {
			filtered++
			continue
		}

		attrs := ParseAttributes(fields[colAttribute])
		keys = AttributeKeys(keys, seenKeys, attrs)

		name, ok := Lookup(attrs, r.nameField)
		if !ok {
			missingName++
			continue
		}

		exon, err := parseExon(fields, name, lineNum)
		if err != nil {
			return nil, err
		}
		exons = append(exons, exon)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	if len(exons) == 0 && missingName > 0 {
		return nil, &bed12.FieldNotFoundError{Field: r.nameField, Available: keys}
	}

	r.logger.Debug("read GTF rows",
		zap.Int("rows", rows),
		zap.Int("exons", len(exons)),
		zap.Int("missing_name", missingName),
		zap.Int("filtered", filtered))

	return exons, nil
}

// parseExon builds an exon from a nine-column GTF row.
func parseExon(fields []string, name string, lineNum int) (bed12.Exon, error) {
	start, err := bed12.ParseInt(formatName, "start", fields[colStart], lineNum)
	if err != nil {
		return bed12.Exon{}, err
	}
	end, err := bed12.ParseInt(formatName, "end", fields[colEnd], lineNum)
	if err != nil {
		return bed12.Exon{}, err
	}

	return bed12.Exon{
		Chrom:  fields[colChrom],
		Start:  start,
		End:    end,
		Name:   name,
		Score:  fields[colScore],
		Strand: fields[colStrand],
	}, nil
}
