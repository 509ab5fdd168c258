package fastparser

import (
	"bytes"

	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// scalarNoQuote splits lines that contain no quote byte by jumping from
// delimiter to delimiter.
type scalarNoQuote struct{}

// ScalarNoQuote returns the quote-free scalar strategy.
func ScalarNoQuote() Strategy {
	return scalarNoQuote{}
}

func (scalarNoQuote) Name() string    { return NameScalarNoQuote }
func (scalarNoQuote) Priority() int   { return PriorityScalarNoQuote }
func (scalarNoQuote) Available() bool { return true }

func (scalarNoQuote) CanHandle(line []byte, d dialect.Dialect) bool {
	return !d.Trim && bytes.IndexByte(line, d.Quote) < 0
}

func (scalarNoQuote) Split(line []byte, d dialect.Dialect, dst []tokenizer.Span) []tokenizer.Span {
	dst = dst[:0]
	start := 0
	for {
		i := bytes.IndexByte(line[start:], d.Delimiter)
		if i < 0 {
			return append(dst, tokenizer.Span{Start: start, End: len(line)})
		}
		dst = append(dst, tokenizer.Span{Start: start, End: start + i})
		start += i + 1
	}
}

// quotedFallback is the reference splitter. It handles every line.
type quotedFallback struct{}

// QuotedFallback returns the strategy that accepts every line.
func QuotedFallback() Strategy {
	return quotedFallback{}
}

func (quotedFallback) Name() string                               { return NameFallback }
func (quotedFallback) Priority() int                              { return PriorityFallback }
func (quotedFallback) Available() bool                            { return true }
func (quotedFallback) CanHandle(_ []byte, _ dialect.Dialect) bool { return true }

func (quotedFallback) Split(line []byte, d dialect.Dialect, dst []tokenizer.Span) []tokenizer.Span {
	return tokenizer.Split(line, d, dst)
}
