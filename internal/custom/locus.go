package custom

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inodb/bed12/internal/bed12"
)

var locusSep = regexp.MustCompile(`[:-]`)

// ParseLocus splits a "chrom:start-end" string. Commas are dropped as
// thousands separators. A locus that does not split into exactly three parts
// is rejected, which also rejects chromosome names containing '-'.
func ParseLocus(locus string) (chrom string, start, end int64, err error) {
	return parseLocusAt(locus, 0)
}

func parseLocusAt(locus string, line int) (chrom string, start, end int64, err error) {
	clean := strings.ReplaceAll(strings.TrimSpace(locus), ",", "")
	parts := locusSep.Split(clean, -1)
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, &bed12.FormatError{
			Format:  formatName,
			Line:    line,
			Message: fmt.Sprintf("malformed locus %q: expected chrom:start-end", locus),
		}
	}

	start, err = bed12.ParseInt(formatName, "exon_starts", parts[1], line)
	if err != nil {
		return "", 0, 0, err
	}
	end, err = bed12.ParseInt(formatName, "exon_ends", parts[2], line)
	if err != nil {
		return "", 0, 0, err
	}
	return parts[0], start, end, nil
}
