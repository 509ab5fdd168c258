package csv

import "github.com/shapestone/shape-csvtok/internal/tokenizer"

const initialFieldCapacity = 16

// boundaryCache holds the field spans of one row. It is filled on the first
// indexed access and reused until the row is reset for the next line.
type boundaryCache struct {
	spans []tokenizer.Span
	ready bool
}

func (c *boundaryCache) get(line []byte, cfg *config) []tokenizer.Span {
	if !c.ready {
		if c.spans == nil {
			c.spans = make([]tokenizer.Span, 0, initialFieldCapacity)
		}
		c.spans = cfg.sel.Split(line, cfg.d, c.spans)
		c.ready = true
	}
	return c.spans
}

func (c *boundaryCache) reset() {
	c.spans = c.spans[:0]
	c.ready = false
}

// Row is a view of one line of the buffer.
//
// A Row returned by Rows.Row is reused by the next call to Rows.Next; use
// Values or Field.String to keep data beyond that.
type Row struct {
	line   []byte
	offset int
	index  int
	lineNo int
	cfg    *config
	cache  boundaryCache
	// scratch holds decoded bytes of rewritten fields on their way to the pool.
	scratch []byte
}

func (r *Row) reset(line []byte, offset, index, lineNo int) {
	r.line = line
	r.offset = offset
	r.index = index
	r.lineNo = lineNo
	r.cache.reset()
}

func (r *Row) spans() []tokenizer.Span {
	return r.cache.get(r.line, r.cfg)
}

// FieldCount returns the number of fields. It is always at least 1.
func (r *Row) FieldCount() int {
	return len(r.spans())
}

// Field returns the field at index i.
// It returns an *IndexError when i is outside [0, FieldCount).
func (r *Row) Field(i int) (Field, error) {
	spans := r.spans()
	if i < 0 || i >= len(spans) {
		return Field{}, &IndexError{Row: r.index, Index: i, Count: len(spans)}
	}
	return r.field(spans[i], i), nil
}

func (r *Row) field(sp tokenizer.Span, i int) Field {
	return Field{line: r.line, span: sp, d: r.cfg.d, row: r.index, index: i}
}

// Fields returns a forward-only iterator over the fields. It splits the line
// on its own and does not consult or fill the row's field cache.
func (r *Row) Fields() *FieldIterator {
	return &FieldIterator{row: r, it: tokenizer.NewIterator(r.line, r.cfg.d)}
}

// Values returns every field as an owned string, interned through the
// configured pool.
func (r *Row) Values() []string {
	return r.AppendValues(make([]string, 0, r.FieldCount()))
}

// AppendValues appends every field value to dst.
func (r *Row) AppendValues(dst []string) []string {
	for i, sp := range r.spans() {
		dst = append(dst, r.field(sp, i).materializeInto(r.cfg.pool, &r.scratch))
	}
	return dst
}

// Raw returns the line without its terminator.
func (r *Row) Raw() []byte {
	return r.line
}

// Offset returns the byte offset of the row within the buffer.
func (r *Row) Offset() int {
	return r.offset
}

// Index returns the 0-based index of the row among data rows.
// The header, if any, is not counted.
func (r *Row) Index() int {
	return r.index
}

// Line returns the 1-based physical line number of the row in the buffer.
func (r *Row) Line() int {
	return r.lineNo
}

// FieldIterator walks the fields of a row front to back.
type FieldIterator struct {
	row *Row
	it  tokenizer.Iterator
	cur Field
	n   int
}

// Next advances to the next field and reports whether there is one.
func (it *FieldIterator) Next() bool {
	sp, ok := it.it.Next()
	if !ok {
		return false
	}
	it.cur = it.row.field(sp, it.n)
	it.n++
	return true
}

// Field returns the current field.
func (it *FieldIterator) Field() Field {
	return it.cur
}

// Reset rewinds the iterator to the first field.
func (it *FieldIterator) Reset() {
	it.it.Reset()
	it.cur = Field{}
	it.n = 0
}
