package csv

import (
	"unsafe"

	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// Field is a view of one field of a row. It borrows the buffer it came from.
type Field struct {
	line  []byte
	span  tokenizer.Span
	d     dialect.Dialect
	row   int
	index int
}

// Bytes returns the decoded field value: quotes removed, doubled quotes
// collapsed and, for unquoted fields with trimming on, surrounding whitespace
// removed. The result aliases the buffer unless decoding had to rewrite the
// bytes. Callers must not modify it.
func (f Field) Bytes() []byte {
	return tokenizer.Value(f.line, f.span, f.d)
}

// Raw returns the field exactly as it appears in the line.
func (f Field) Raw() []byte {
	return f.span.Raw(f.line)
}

// String returns the decoded value as an owned string.
func (f Field) String() string {
	b := f.Bytes()
	if f.span.Rewrite {
		// b was freshly allocated by the decoder and is referenced nowhere else.
		return unsafeString(b)
	}
	return string(b)
}

// Materialize returns the decoded value through pool. A nil pool behaves
// like String.
func (f Field) Materialize(pool Pool) string {
	switch {
	case pool == nil:
		return f.String()
	case !f.span.Rewrite:
		return pool.GetOrAdd(f.Bytes())
	}
	scratch := tokenizer.GetBuffer()
	s := f.materializeInto(pool, scratch)
	tokenizer.PutBuffer(scratch)
	return s
}

// materializeInto is Materialize decoding rewritten fields into *scratch, so
// the pool's copy on a miss is the only allocation.
func (f Field) materializeInto(pool Pool, scratch *[]byte) string {
	if pool == nil || !f.span.Rewrite {
		return f.Materialize(pool)
	}
	*scratch = tokenizer.AppendValue((*scratch)[:0], f.line, f.span, f.d, f.d.Trim)
	return pool.GetOrAdd(*scratch)
}

// Quoted reports whether the field starts with the quote byte.
func (f Field) Quoted() bool {
	return f.span.Quoted
}

// IsEmpty reports whether the decoded value is empty.
func (f Field) IsEmpty() bool {
	// A rewritten field always decodes to at least one byte.
	return !f.span.Rewrite && len(f.Bytes()) == 0
}

// Span returns the raw byte range of the field within its line.
func (f Field) Span() Span {
	return f.span
}

// RowIndex returns the 0-based data row the field belongs to.
func (f Field) RowIndex() int {
	return f.row
}

// Index returns the 0-based position of the field in its row.
func (f Field) Index() int {
	return f.index
}

// unsafeString converts bytes to a string without copying.
// b must never be modified afterwards.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// unsafeBytes returns the bytes of s without copying. The result must not be
// modified.
func unsafeBytes(s string) []byte {
	if len(s) == 0 {
		return []byte{}
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
