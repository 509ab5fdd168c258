package tokenizer

import "github.com/shapestone/shape-csvtok/internal/dialect"

// Iterator walks the fields of one line front to back.
// It keeps no state beyond its position, so several iterators over the same
// line are independent of each other.
type Iterator struct {
	line []byte
	d    dialect.Dialect
	pos  int
	done bool
}

// NewIterator returns an iterator positioned before the first field of line.
func NewIterator(line []byte, d dialect.Dialect) Iterator {
	return Iterator{line: line, d: d}
}

// Next returns the next field span. ok is false once every field was returned.
func (it *Iterator) Next() (sp Span, ok bool) {
	if it.done {
		return Span{}, false
	}
	sp, next := scanField(it.line, it.pos, it.d)
	if next > len(it.line) {
		it.done = true
	} else {
		it.pos = next
	}
	return sp, true
}

// Reset rewinds the iterator to the first field.
func (it *Iterator) Reset() {
	it.pos = 0
	it.done = false
}
