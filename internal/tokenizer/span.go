// Package tokenizer splits a single CSV line into field spans.
//
// The grammar is lenient: a quote byte is only special as the first byte of a
// field, a doubled quote inside a quoted field is one literal quote, bytes after
// a closing quote belong to the field up to the next delimiter, and an
// unterminated quote runs to the end of the line. Nothing here ever fails.
package tokenizer

// Span is the raw byte range of one field inside a line.
//
// Spans of a line are contiguous: the next span starts one byte (the delimiter)
// after the previous one ends. Start/End are offsets into the line, not the
// enclosing buffer.
type Span struct {
	Start int
	End   int
	// Quoted is set when the field starts with the quote byte.
	Quoted bool
	// Rewrite is set when the decoded value cannot be a sub-slice of the line:
	// the field holds an escaped quote or literal bytes after its closing quote.
	Rewrite bool
}

// Len returns the raw length of the span including any quotes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Raw returns the undecoded bytes of the span.
func (s Span) Raw(line []byte) []byte {
	return line[s.Start:s.End]
}
