package fastparser

import (
	"cmp"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
	"github.com/shapestone/shape-csvtok/pkg/logger"
	"github.com/shapestone/shape-csvtok/pkg/metrics"
)

// Selector dispatches each line to the first strategy that can handle it.
// The table is fixed at construction; a Selector is safe for concurrent use.
type Selector struct {
	strategies []Strategy
	// counters[i] counts lines split by strategies[i]; nil without metrics.
	counters []prometheus.Counter
}

// SelectorOption configures NewSelector.
type SelectorOption func(*selectorConfig)

type selectorConfig struct {
	extra       []Strategy
	logger      *zap.Logger
	metrics     *metrics.Collector
	accelerated bool
}

// WithStrategies registers additional strategies. They are ranked with the
// built-ins by priority. Unavailable strategies are dropped.
func WithStrategies(s ...Strategy) SelectorOption {
	return func(c *selectorConfig) {
		c.extra = append(c.extra, s...)
	}
}

// WithLogger sets the logger used while building the table.
func WithLogger(l *zap.Logger) SelectorOption {
	return func(c *selectorConfig) {
		c.logger = l
	}
}

// WithMetrics counts dispatched lines per strategy on m.
func WithMetrics(m *metrics.Collector) SelectorOption {
	return func(c *selectorConfig) {
		c.metrics = m
	}
}

// WithoutAcceleration leaves the vectorized built-ins out of the table.
func WithoutAcceleration() SelectorOption {
	return func(c *selectorConfig) {
		c.accelerated = false
	}
}

// NewSelector builds a strategy table from the built-ins and opts.
func NewSelector(opts ...SelectorOption) *Selector {
	cfg := selectorConfig{accelerated: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := logger.OrNop(cfg.logger)

	candidates := []Strategy{ScalarNoQuote()}
	if cfg.accelerated {
		candidates = append(candidates, VectorizedAVX512(), VectorizedAVX2())
	}
	candidates = append(candidates, cfg.extra...)

	table := make([]Strategy, 0, len(candidates)+1)
	for _, s := range candidates {
		switch {
		case s == nil:
			continue
		case s.Name() == NameFallback:
			log.Warn("ignoring strategy with reserved name", zap.String("strategy", s.Name()))
			continue
		case !s.Available():
			log.Debug("strategy unavailable on this host", zap.String("strategy", s.Name()))
			continue
		}
		table = append(table, s)
	}
	slices.SortStableFunc(table, func(a, b Strategy) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	table = append(table, QuotedFallback())

	sel := &Selector{
		strategies: table,
		counters:   make([]prometheus.Counter, len(table)),
	}
	if cfg.metrics != nil {
		for i, s := range table {
			sel.counters[i] = cfg.metrics.StrategyCounter(s.Name())
		}
	}

	log.Debug("strategy table resolved", zap.Strings("strategies", sel.Names()))
	return sel
}

var (
	defaultSelector     *Selector
	defaultSelectorOnce sync.Once
)

// Default returns the process-wide selector with the built-in strategies.
func Default() *Selector {
	defaultSelectorOnce.Do(func() {
		defaultSelector = NewSelector()
	})
	return defaultSelector
}

// Select returns the strategy that Split would use for line.
func (s *Selector) Select(line []byte, d dialect.Dialect) Strategy {
	return s.strategies[s.index(line, d)]
}

// Split splits line with the first strategy that can handle it.
func (s *Selector) Split(line []byte, d dialect.Dialect, dst []tokenizer.Span) []tokenizer.Span {
	i := s.index(line, d)
	if c := s.counters[i]; c != nil {
		c.Inc()
	}
	return s.strategies[i].Split(line, d, dst)
}

func (s *Selector) index(line []byte, d dialect.Dialect) int {
	last := len(s.strategies) - 1
	for i, st := range s.strategies[:last] {
		if st.CanHandle(line, d) {
			return i
		}
	}
	return last
}

// Strategies returns the table in dispatch order.
func (s *Selector) Strategies() []Strategy {
	return slices.Clone(s.strategies)
}

// Names returns the strategy names in dispatch order.
func (s *Selector) Names() []string {
	names := make([]string, len(s.strategies))
	for i, st := range s.strategies {
		names[i] = st.Name()
	}
	return names
}
