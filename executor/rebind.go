package executor

import (
	"fmt"
	"strings"
)

// Rebind converts :name placeholders to ? and returns the matching values in
// placeholder order. Text inside single-quoted literals and double-quoted
// identifiers is copied unchanged.
func Rebind(query string, args map[string]any) (string, []any, error) {
	var (
		sb   strings.Builder
		argv []any
	)
	sb.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch c {
		case '\'', '"':
			end := closingQuote(query, i)
			if end < 0 {
				return "", nil, fmt.Errorf("unterminated quote at offset %d", i)
			}
			sb.WriteString(query[i : end+1])
			i = end
		case ':':
			j := i + 1
			for j < len(query) && isNameByte(query[j], j == i+1) {
				j++
			}
			if j == i+1 {
				sb.WriteByte(c)
				continue
			}
			name := query[i+1 : j]
			v, ok := args[name]
			if !ok {
				return "", nil, fmt.Errorf("missing parameter: %s", name)
			}
			argv = append(argv, v)
			sb.WriteByte('?')
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), argv, nil
}

// closingQuote returns the index of the quote that closes the one at start.
// A doubled quote character is an escaped quote.
func closingQuote(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i
	}
	return -1
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
