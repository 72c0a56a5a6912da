// Package bed12 aggregates exon intervals into BED12 transcript records.
package bed12

import (
	"strconv"
	"strings"
)

// RGB is the item color written for every transcript.
const RGB = "0,0,255"

// Score is the score written for every transcript. Input scores are not
// carried over, so exons of one transcript never disagree on it.
const Score = "."

// Strand values.
const (
	StrandPlus    = "+"
	StrandMinus   = "-"
	StrandUnknown = "."
)

// Exon is one input interval row. Start and End are 1-based and inclusive.
type Exon struct {
	Chrom  string
	Start  int64
	End    int64
	Name   string
	Score  string
	Strand string
}

// Transcript is one BED12 row built from all exons sharing a name.
// ChromStart is 0-based; blocks are ordered by ascending exon start.
type Transcript struct {
	Chrom       string
	ChromStart  int64
	ChromEnd    int64
	Name        string
	Score       string
	Strand      string
	ThickStart  int64
	ThickEnd    int64
	RGB         string
	BlockCount  int
	BlockSizes  []int64
	BlockStarts []int64
}

var columns = []string{
	"chrom",
	"chromStart",
	"chromEnd",
	"name",
	"score",
	"strand",
	"thickStart",
	"thickEnd",
	"rgb",
	"blockCount",
	"blockSizes",
	"blockStarts",
}

// Columns returns the BED12 column names in output order. When clustered is
// true only the ten columns that are constant within a transcript are
// returned, i.e. the set used as the grouping key before the block columns
// are joined.
func Columns(clustered bool) []string {
	n := len(columns)
	if clustered {
		n -= 2
	}
	out := make([]string, n)
	copy(out, columns)
	return out
}

// Fields renders the transcript as the twelve BED12 column values, in the
// order given by Columns.
func (t Transcript) Fields() []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = t.Field(col)
	}
	return out
}

// Field renders the value of one BED12 column. Unknown names yield "".
func (t Transcript) Field(col string) string {
	switch col {
	case "chrom":
		return t.Chrom
	case "chromStart":
		return strconv.FormatInt(t.ChromStart, 10)
	case "chromEnd":
		return strconv.FormatInt(t.ChromEnd, 10)
	case "name":
		return t.Name
	case "score":
		return t.Score
	case "strand":
		return t.Strand
	case "thickStart":
		return strconv.FormatInt(t.ThickStart, 10)
	case "thickEnd":
		return strconv.FormatInt(t.ThickEnd, 10)
	case "rgb":
		return t.RGB
	case "blockCount":
		return strconv.Itoa(t.BlockCount)
	case "blockSizes":
		return FormatBlocks(t.BlockSizes)
	case "blockStarts":
		return FormatBlocks(t.BlockStarts)
	}
	return ""
}

// FormatBlocks renders a block list as comma-joined base-10 integers.
func FormatBlocks(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}

// ParseBlocks is the inverse of FormatBlocks.
func ParseBlocks(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
