package tokenizer

import (
	"bytes"

	"github.com/shapestone/shape-csvtok/internal/dialect"
)

// Split appends the spans of every field in line to dst[:0] and returns it.
// A line always has at least one field; an empty line yields one empty span.
func Split(line []byte, d dialect.Dialect, dst []Span) []Span {
	dst = dst[:0]
	pos := 0
	for {
		sp, next := scanField(line, pos, d)
		dst = append(dst, sp)
		if next > len(line) {
			return dst
		}
		pos = next
	}
}

// Count returns the number of fields in line without allocating.
func Count(line []byte, d dialect.Dialect) int {
	n := 1
	pos := 0
	for {
		_, next := scanField(line, pos, d)
		if next > len(line) {
			return n
		}
		n++
		pos = next
	}
}

// Strings splits line and returns the decoded value of every field.
func Strings(line []byte, d dialect.Dialect) []string {
	spans := getSpans()
	spans = Split(line, d, spans)
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = string(Value(line, sp, d))
	}
	putSpans(spans)
	return out
}

// scanField reads the field starting at pos. It returns the field span and the
// offset just past the delimiter that ended it, or len(line)+1 when the field
// ran to the end of the line.
func scanField(line []byte, pos int, d dialect.Dialect) (Span, int) {
	n := len(line)
	sp := Span{Start: pos}

	if pos < n && line[pos] == d.Quote {
		sp.Quoted = true
		i := pos + 1
		for {
			j := bytes.IndexByte(line[i:], d.Quote)
			if j < 0 {
				// Unterminated: the rest of the line is field content.
				sp.End = n
				return sp, n + 1
			}
			i += j
			if i+1 < n && line[i+1] == d.Quote {
				sp.Rewrite = true
				i += 2
				continue
			}
			i++
			break
		}

		k := bytes.IndexByte(line[i:], d.Delimiter)
		if k < 0 {
			k = n - i
		}
		if k > 0 {
			sp.Rewrite = true
		}
		sp.End = i + k
		if sp.End == n {
			return sp, n + 1
		}
		return sp, sp.End + 1
	}

	j := bytes.IndexByte(line[pos:], d.Delimiter)
	if j < 0 {
		sp.End = n
		return sp, n + 1
	}
	sp.End = pos + j
	return sp, sp.End + 1
}
