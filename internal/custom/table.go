// Package custom reads tabular interval files (delimited text or XLSX) with a
// header row and converts them to exons.
package custom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/inodb/bed12/internal/bed12"
)

const formatName = "custom"

// byteOrderMark prefixes UTF-8 CSV exports from spreadsheet applications.
const byteOrderMark = "\ufeff"

// Table is a header plus data rows. Header names are lower-cased so column
// matching is case-insensitive.
type Table struct {
	Header []string
	Rows   [][]string
	// Lines holds the 1-based source line (or sheet row) of each data row.
	Lines []int

	index map[string]int
}

// NewTable builds a table. Lines may be nil, in which case rows are assumed
// to follow the header directly.
func NewTable(header []string, rows [][]string, lines []int) *Table {
	t := &Table{
		Header: make([]string, len(header)),
		Rows:   rows,
		Lines:  lines,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, byteOrderMark)
		}
		h = strings.ToLower(strings.TrimSpace(h))
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	if t.Lines == nil {
		t.Lines = make([]int, len(rows))
		for i := range rows {
			t.Lines[i] = i + 2
		}
	}
	return t
}

// Has reports whether the table has the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[strings.ToLower(col)]
	return ok
}

// Cell returns the value of col in row i, or "" if the row is short or the
// column is absent.
func (t *Table) Cell(i int, col string) string {
	j, ok := t.index[strings.ToLower(col)]
	if !ok || j >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][j])
}

// ReadDelimited reads a delimited text table whose first record is the header.
func ReadDelimited(in io.Reader, delim rune) (*Table, error) {
	r := csv.NewReader(in)
	r.Comma = delim
	r.LazyQuotes = true
	// Short rows read as empty trailing cells.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, &bed12.FormatError{Format: formatName, Message: "input has no header row"}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	var (
		rows  [][]string
		lines []int
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		if blank(rec) {
			continue
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}

	return NewTable(header, rows, lines), nil
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &bed12.FormatError{Format: formatName, Line: pe.Line, Message: pe.Err.Error()}
	}
	return fmt.Errorf("read delimited input: %w", err)
}

// ReadXLSX reads the first sheet of a workbook; its first row is the header.
func ReadXLSX(in io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &bed12.FormatError{Format: formatName, Message: "workbook has no sheets"}
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	start := -1
	for i, row := range all {
		if !blank(row) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, &bed12.FormatError{Format: formatName, Message: "input has no header row"}
	}

	header := all[start]
	var (
		rows  [][]string
		lines []int
	)
	for i := start + 1; i < len(all); i++ {
		if blank(all[i]) {
			continue
		}
		rows = append(rows, all[i])
		lines = append(lines, i+1)
	}

	return NewTable(header, rows, lines), nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
