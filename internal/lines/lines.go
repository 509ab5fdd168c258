// Package lines cuts a buffer into logical lines.
//
// "\r\n", "\n" and "\r" each end exactly one line and are not part of it. A
// terminator at the very end of the buffer does not start another line, and
// an empty buffer has no lines. Terminators are found without regard to
// quoting, so a quoted field containing a newline is split across lines.
package lines

import (
	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/fastparser/simd"
)

// Line is the byte range [Start, End) of one line, terminator excluded.
type Line struct {
	Start int
	End   int
}

// Len returns the length of the line in bytes.
func (l Line) Len() int {
	return l.End - l.Start
}

// Bytes returns the line's bytes within buf.
func (l Line) Bytes(buf []byte) []byte {
	return buf[l.Start:l.End:l.End]
}

// Index pre-scans buf and returns every line in order.
func Index(buf []byte, s simd.Scanner) []Line {
	out := make([]Line, 0, len(buf)/64+1)
	pos := 0
	for pos < len(buf) {
		var l Line
		l, pos = next(buf, pos, s)
		out = append(out, l)
	}
	return out
}

// Cursor finds lines one at a time, scanning only as far as the line it
// returns.
type Cursor struct {
	buf []byte
	pos int
	s   simd.Scanner
}

// NewCursor returns a cursor at the start of buf.
func NewCursor(buf []byte, s simd.Scanner) *Cursor {
	return &Cursor{buf: buf, s: s}
}

// Next returns the next line. ok is false at the end of the buffer.
func (c *Cursor) Next() (l Line, ok bool) {
	if c.pos >= len(c.buf) {
		return Line{}, false
	}
	l, c.pos = next(c.buf, c.pos, c.s)
	return l, true
}

// Offset returns the position the next line starts at.
func (c *Cursor) Offset() int {
	return c.pos
}

// next returns the line starting at pos and the offset after its terminator.
func next(buf []byte, pos int, s simd.Scanner) (Line, int) {
	i := s.FindNext(simd.Newline, buf[pos:], dialect.Dialect{})
	if i < 0 {
		return Line{Start: pos, End: len(buf)}, len(buf)
	}
	end := pos + i
	after := end + 1
	if buf[end] == '\r' && after < len(buf) && buf[after] == '\n' {
		after++
	}
	return Line{Start: pos, End: end}, after
}
