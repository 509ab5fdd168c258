// Package fastparser chooses, per line, the fastest algorithm able to split it.
//
// Every algorithm is a Strategy. A Selector holds an immutable table of
// strategies ordered by descending priority and hands each line to the first
// one whose CanHandle accepts it. The quote-aware fallback accepts every line
// and is always last, so selection never fails.
package fastparser

import (
	"math"

	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// Strategy is one line-splitting algorithm.
//
// Split must produce exactly the spans tokenizer.Split produces for every line
// CanHandle accepts. Implementations must be safe for concurrent use.
type Strategy interface {
	Name() string
	Priority() int
	// Available reports whether the strategy can run on this host.
	Available() bool
	CanHandle(line []byte, d dialect.Dialect) bool
	Split(line []byte, d dialect.Dialect, dst []tokenizer.Span) []tokenizer.Span
}

// Built-in strategy names.
const (
	NameScalarNoQuote = "scalar-no-quote"
	NameAVX2          = "vectorized-avx2"
	NameAVX512        = "vectorized-avx512"
	NameFallback      = "quoted-fallback"
)

// Built-in strategy priorities. Higher runs first.
const (
	PriorityAVX512        = 300
	PriorityAVX2          = 200
	PriorityScalarNoQuote = 100
	PriorityFallback      = math.MinInt32
)
