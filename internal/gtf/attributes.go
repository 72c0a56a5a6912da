package gtf

import (
	"strconv"
	"strings"
	"unicode"
)

// Attribute is one `key "value"` pair from the GTF attribute column.
type Attribute struct {
	Key   string
	Value string
}

// ParseAttributes splits a GTF attribute string on semicolons.
// Format: key "value"; key "value"; ...
//
// A segment's key is its leading run of word characters and its value is the
// text between the first and last double quote. Segments without a key,
// including the empty one after a trailing semicolon, get the placeholder key
// att_col_<index>, where index is the zero-based segment position.
func ParseAttributes(attrStr string) []Attribute {
	parts := strings.Split(attrStr, ";")
	attrs := make([]Attribute, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)

		key := leadingWord(part)
		if key == "" {
			key = "att_col_" + strconv.Itoa(i)
		}

		var value string
		if first := strings.IndexByte(part, '"'); first != -1 {
			if last := strings.LastIndexByte(part, '"'); last > first {
				value = part[first+1 : last]
			}
		}

		attrs = append(attrs, Attribute{Key: key, Value: value})
	}
	return attrs
}

// AttributeKeys appends to keys every key of attrs not yet in seen, keeping
// first-seen order.
func AttributeKeys(keys []string, seen map[string]bool, attrs []Attribute) []string {
	for _, a := range attrs {
		if !seen[a.Key] {
			seen[a.Key] = true
			keys = append(keys, a.Key)
		}
	}
	return keys
}

// Lookup returns the value of the first attribute named key.
func Lookup(attrs []Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func leadingWord(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if end == -1 {
		return s
	}
	return s[:end]
}
