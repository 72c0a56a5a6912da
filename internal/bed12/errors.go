package bed12

import (
	"fmt"
	"strings"
)

// FormatError reports input that does not have the shape its format requires.
type FormatError struct {
	Format  string // "GTF" or "custom"
	Line    int    // 1-based input line, 0 when not tied to a line
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s format error at line %d: %s", e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("%s format error: %s", e.Format, e.Message)
}

// FieldNotFoundError reports a name column that is absent from the input.
// Available lists every column name discovered, in first-seen order.
type FieldNotFoundError struct {
	Field     string
	Available []string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found (available: %s)", e.Field, strings.Join(e.Available, ", "))
}

// UnsupportedInputTypeError reports an input whose extension is not gtf, csv or xlsx.
type UnsupportedInputTypeError struct {
	Path string
	Type string
}

func (e *UnsupportedInputTypeError) Error() string {
	return fmt.Sprintf("unsupported input type %q for %s (expected gtf, csv or xlsx)", e.Type, e.Path)
}
