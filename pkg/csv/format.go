package csv

import (
	"bytes"

	"github.com/shapestone/shape-csvtok/internal/dialect"
)

// AppendRecord appends fields to dst as one line, without a terminator,
// quoting each field that would not read back unchanged.
//
// A field is quoted when it contains the delimiter, the quote byte, \r or \n.
// With opts.TrimWhitespace set, leading or trailing whitespace also forces
// quoting. Quotes inside are doubled.
// ParseLine of the result returns fields again, except for an empty slice:
// it formats as an empty line, which parses back as one empty field.
func AppendRecord(dst []byte, fields []string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return dst, err
	}
	d := opts.withDefaults().dialect()
	classes := d.Classes()
	for i, f := range fields {
		if i > 0 {
			dst = append(dst, d.Delimiter)
		}
		dst = appendField(dst, f, d, &classes)
	}
	return dst, nil
}

// FormatRecord returns fields formatted as one line.
func FormatRecord(fields []string, opts Options) (string, error) {
	b, err := AppendRecord(nil, fields, opts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func appendField(dst []byte, value string, d dialect.Dialect, classes *dialect.ClassTable) []byte {
	if !needsQuoting(value, d, classes) {
		return append(dst, value...)
	}
	dst = append(dst, d.Quote)
	b := unsafeBytes(value)
	for {
		i := bytes.IndexByte(b, d.Quote)
		if i < 0 {
			dst = append(dst, b...)
			break
		}
		dst = append(dst, b[:i+1]...)
		dst = append(dst, d.Quote)
		b = b[i+1:]
	}
	return append(dst, d.Quote)
}

func needsQuoting(value string, d dialect.Dialect, classes *dialect.ClassTable) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if classes.Structural(value[i]) {
			return true
		}
	}
	return d.Trim && (dialect.IsSpace(value[0]) || dialect.IsSpace(value[len(value)-1]))
}
