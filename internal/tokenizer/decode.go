package tokenizer

import (
	"bytes"

	"github.com/shapestone/shape-csvtok/internal/dialect"
)

// Value returns the decoded bytes of sp, trimmed when d.Trim is set.
func Value(line []byte, sp Span, d dialect.Dialect) []byte {
	return ValueTrim(line, sp, d, d.Trim)
}

// ValueTrim returns the decoded bytes of sp. The result is a sub-slice of line
// unless sp.Rewrite is set, in which case a new slice is allocated.
// Trimming only applies to unquoted fields.
func ValueTrim(line []byte, sp Span, d dialect.Dialect, trim bool) []byte {
	raw := line[sp.Start:sp.End]
	if !sp.Quoted {
		if trim {
			return dialect.TrimSpace(raw)
		}
		return raw
	}
	if !sp.Rewrite {
		return quotedBody(raw, d.Quote)
	}
	return appendQuoted(make([]byte, 0, len(raw)), raw, d.Quote)
}

// AppendValue appends the decoded bytes of sp to dst.
func AppendValue(dst, line []byte, sp Span, d dialect.Dialect, trim bool) []byte {
	raw := line[sp.Start:sp.End]
	if !sp.Quoted {
		if trim {
			raw = dialect.TrimSpace(raw)
		}
		return append(dst, raw...)
	}
	return appendQuoted(dst, raw, d.Quote)
}

// quotedBody strips the enclosing quotes of a field that needs no rewriting.
// A closed field ends with the quote byte; an unterminated one does not.
func quotedBody(raw []byte, q byte) []byte {
	if len(raw) >= 2 && raw[len(raw)-1] == q {
		return raw[1 : len(raw)-1]
	}
	return raw[1:]
}

// appendQuoted decodes a quoted field: "" becomes one quote, the first lone
// quote closes the field, and whatever follows it is copied verbatim.
func appendQuoted(dst, raw []byte, q byte) []byte {
	body := raw[1:]
	for {
		i := bytes.IndexByte(body, q)
		if i < 0 {
			return append(dst, body...)
		}
		dst = append(dst, body[:i]...)
		if i+1 < len(body) && body[i+1] == q {
			dst = append(dst, q)
			body = body[i+2:]
			continue
		}
		return append(dst, body[i+1:]...)
	}
}
