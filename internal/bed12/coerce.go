package bed12

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ParseInt converts a coordinate cell to an integer. Surrounding whitespace
// and a zero fractional part ("100.0", as spreadsheets render integers) are
// accepted; anything else is a FormatError naming the column and line.
func ParseInt(format, column, value string, line int) (int64, error) {
	s := normalizeInt(value)
	n, err := cast.ToInt64E(s)
	if err != nil || s == "" {
		return 0, &FormatError{
			Format:  format,
			Line:    line,
			Message: fmt.Sprintf("column %q: %q is not an integer", column, value),
		}
	}
	return n, nil
}

func normalizeInt(value string) string {
	s := strings.TrimSpace(value)
	if whole, frac, ok := strings.Cut(s, "."); ok && whole != "" && strings.Trim(frac, "0") == "" {
		s = whole
	}
	// cast parses with base 0, so a leading zero would read as octal.
	if t := strings.TrimLeft(s, "0"); t != s {
		if t == "" {
			t = "0"
		}
		s = t
	}
	return s
}
