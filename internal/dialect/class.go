package dialect

// Class is the structural class of a single byte under a dialect.
type Class uint8

const (
	ClassOther Class = iota
	ClassDelimiter
	ClassQuote
	ClassCR
	ClassLF
)

// ClassTable is a 256-entry lookup table mapping a byte to its structural class.
// It fits in L1 cache and replaces a chain of comparisons with one load.
type ClassTable [256]Class

// Classes builds the class table for d.
func (d Dialect) Classes() ClassTable {
	var t ClassTable
	t['\r'] = ClassCR
	t['\n'] = ClassLF
	t[d.Quote] = ClassQuote
	t[d.Delimiter] = ClassDelimiter
	return t
}

// Structural reports whether c is a delimiter, quote or line terminator.
func (t *ClassTable) Structural(c byte) bool {
	return t[c] != ClassOther
}
