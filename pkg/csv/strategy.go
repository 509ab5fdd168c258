package csv

import (
	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/fastparser"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// Strategy is a line-splitting algorithm. Custom strategies are ranked with
// the built-in ones by Priority and must split every line they accept exactly
// like SplitSpans does.
type Strategy = fastparser.Strategy

// Dialect is the delimiter, quote and trim setting a Strategy receives.
type Dialect = dialect.Dialect

// Span is the raw byte range of one field within a line.
type Span = tokenizer.Span

// Selector holds an ordered, immutable strategy table.
type Selector = fastparser.Selector

// SelectorOption configures NewSelector.
type SelectorOption = fastparser.SelectorOption

// Built-in strategy names.
const (
	StrategyScalarNoQuote = fastparser.NameScalarNoQuote
	StrategyAVX2          = fastparser.NameAVX2
	StrategyAVX512        = fastparser.NameAVX512
	StrategyFallback      = fastparser.NameFallback
)

// NewSelector builds a strategy table from the built-ins and opts.
// The quote-aware fallback is always the last entry.
//
// Example:
//
//	sel := csv.NewSelector(csv.WithStrategies(myStrategy))
//	opts := csv.DefaultOptions()
//	opts.Selector = sel
func NewSelector(opts ...SelectorOption) *Selector {
	return fastparser.NewSelector(opts...)
}

// DefaultSelector returns the process-wide selector.
func DefaultSelector() *Selector {
	return fastparser.Default()
}

var (
	// WithStrategies registers additional strategies.
	WithStrategies = fastparser.WithStrategies
	// WithLogger logs the resolved strategy table.
	WithLogger = fastparser.WithLogger
	// WithMetrics counts lines per strategy.
	WithMetrics = fastparser.WithMetrics
	// WithoutAcceleration leaves out the vectorized strategies.
	WithoutAcceleration = fastparser.WithoutAcceleration
)

// SplitSpans splits line with the reference tokenizer. Custom strategies can
// use it as a fallback or as the oracle in their tests.
func SplitSpans(line []byte, d Dialect, dst []Span) []Span {
	return tokenizer.Split(line, d, dst)
}
