// Package csv tokenizes CSV lines and buffers.
//
// The grammar is deliberately lenient. A quote byte only opens a quoted field
// when it is the first byte of the field; inside, a doubled quote is one
// literal quote and the first lone quote closes the field. Bytes after the
// closing quote are kept as part of the field, and an unterminated quote runs
// to the end of the line. Malformed quoting is never an error.
//
// # Allocating API
//
// ParseLine and ParseAll return owned strings:
//
//	fields, err := csv.ParseLineString(`a,"b,c",d`, csv.DefaultOptions())
//	// fields: ["a" "b,c" "d"]
//
// # Zero-copy API
//
// Enumerate walks a whole buffer and yields Row views whose Field values are
// sub-slices of the buffer wherever decoding allows:
//
//	rows, err := csv.Enumerate(buf, csv.Options{HasHeader: true})
//	if err != nil {
//	    // handle error
//	}
//	for rows.Next() {
//	    name, _ := rows.Row().Field(0)
//	    fmt.Printf("%s\n", name.Bytes())
//	}
//
// Both APIs return unescaped values.
//
// # Strategies
//
// Each line is split by the first strategy in a Selector that accepts it:
// 64-lane and 32-lane vectorized scanners on hosts with AVX-512 or AVX2, a
// scalar scanner for quote-free lines, and the quote-aware reference
// tokenizer for everything else. Custom strategies can be registered with
// NewSelector(WithStrategies(...)).
//
// # Line boundaries
//
// "\r\n", "\n" and "\r" each end one line. Terminators are located without
// regard to quoting, so a quoted field spanning lines is split. Parse such
// data with a record-aware reader instead.
//
// # Thread Safety
//
// Functions, Selectors and StringPools are safe for concurrent use. A Rows
// value and the Rows, Fields and iterators it yields belong to one goroutine.
package csv

import (
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// ParseLine splits one line (without terminator) and returns the decoded
// fields. Strings are interned through Options.StringPool when set.
func ParseLine(line []byte, opts Options) ([]string, error) {
	if line == nil {
		return nil, ErrNilBuffer
	}
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return parseLine(line, cfg), nil
}

// ParseLineString is ParseLine for a string.
func ParseLineString(line string, opts Options) ([]string, error) {
	return ParseLine(unsafeBytes(line), opts)
}

func parseLine(line []byte, cfg *config) []string {
	spans := tokenizer.GetSpans()
	spans = cfg.sel.Split(line, cfg.d, spans)
	var scratch []byte
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = Field{line: line, span: sp, d: cfg.d, index: i}.materializeInto(cfg.pool, &scratch)
	}
	tokenizer.PutSpans(spans)
	return out
}

// ParseAll enumerates buf and returns the values of every data row.
// The header row, if Options.HasHeader is set, is not included.
func ParseAll(buf []byte, opts Options) ([][]string, error) {
	rows, err := Enumerate(buf, opts)
	if err != nil {
		return nil, err
	}
	var out [][]string
	for rows.Next() {
		out = append(out, rows.Row().Values())
	}
	return out, rows.Err()
}

// SplitLine returns zero-copy views of the fields of one line.
// The fields borrow line.
func SplitLine(line []byte, opts Options) ([]Field, error) {
	if line == nil {
		return nil, ErrNilBuffer
	}
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	spans := cfg.sel.Split(line, cfg.d, nil)
	out := make([]Field, len(spans))
	for i, sp := range spans {
		out[i] = Field{line: line, span: sp, d: cfg.d, index: i}
	}
	return out, nil
}

// FieldCount returns the number of fields in line without allocating.
func FieldCount(line []byte, opts Options) (int, error) {
	if line == nil {
		return 0, ErrNilBuffer
	}
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	return tokenizer.Count(line, opts.withDefaults().dialect()), nil
}
