// Package dialect describes the byte-level rules the tokenizer applies to a line:
// which byte separates fields, which byte opens a quoted field, and whether
// unquoted fields are trimmed.
package dialect

// Default separator and quote bytes.
const (
	DefaultDelimiter = ','
	DefaultQuote     = '"'
)

// Dialect is the subset of parsing options the tokenization core consumes.
// It is a small value type and is passed by value on every call.
type Dialect struct {
	Delimiter byte
	Quote     byte
	Trim      bool
}

// Default returns the comma/double-quote dialect without trimming.
func Default() Dialect {
	return Dialect{
		Delimiter: DefaultDelimiter,
		Quote:     DefaultQuote,
	}
}

// ASCIIDelimiter reports whether the delimiter fits in a single 7-bit lane byte.
// Vectorized kernels only broadcast ASCII delimiters.
func (d Dialect) ASCIIDelimiter() bool {
	return d.Delimiter < 0x80
}

// IsSpace reports whether c is trimmed from unquoted field boundaries.
func IsSpace(c byte) bool {
	return spaceTable[c]
}

var spaceTable = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\v': true,
	'\f': true,
	'\r': true,
}

// TrimSpace returns b without leading and trailing ASCII whitespace.
// The result is a sub-slice of b.
func TrimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && spaceTable[b[start]] {
		start++
	}
	end := len(b)
	for end > start && spaceTable[b[end-1]] {
		end--
	}
	return b[start:end]
}
