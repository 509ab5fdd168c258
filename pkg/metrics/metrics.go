// Package metrics exposes Prometheus counters for the tokenizer: which parsing
// strategy handled each line, how many rows were enumerated, and how often the
// string interning pool was hit.
//
// Collectors are registered on an explicit prometheus.Registerer so that tests
// and embedding programs never share global state:
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.NewCollector(reg)
//	if err != nil {
//	    return err
//	}
//	opts.Selector = csv.NewSelector(csv.WithMetrics(c))
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "csvtok"

// Collector holds the tokenizer's metric vectors.
// All methods are safe for concurrent use.
type Collector struct {
	strategyLines *prometheus.CounterVec
	rows          prometheus.Counter
	internLookups *prometheus.CounterVec
}

// NewCollector creates the tokenizer metrics and registers them on reg.
// A nil reg leaves the metrics unregistered, which is convenient in tests.
// Registering twice on the same registry reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		strategyLines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_lines_total",
				Help:      "Number of lines split, by parsing strategy.",
			},
			[]string{"strategy"},
		),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Number of data rows produced by buffer enumeration.",
		}),
		internLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intern_lookups_total",
				Help:      "String pool lookups, by result.",
			},
			[]string{"result"},
		),
	}
	if reg == nil {
		return c, nil
	}

	var err error
	if c.strategyLines, err = register(reg, c.strategyLines); err != nil {
		return nil, err
	}
	if c.rows, err = register(reg, c.rows); err != nil {
		return nil, err
	}
	if c.internLookups, err = register(reg, c.internLookups); err != nil {
		return nil, err
	}
	return c, nil
}

// register adds col to reg, returning the already registered collector when an
// identical one exists.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, fmt.Errorf("failed to register metric: %w", err)
	}
	return col, nil
}

// StrategyCounter returns the line counter for the named strategy.
// Callers resolve it once and increment it on the hot path.
func (c *Collector) StrategyCounter(strategy string) prometheus.Counter {
	return c.strategyLines.WithLabelValues(strategy)
}

// Rows returns the enumerated-rows counter.
func (c *Collector) Rows() prometheus.Counter {
	return c.rows
}

// InternHits returns the counter of pool lookups served from the pool.
func (c *Collector) InternHits() prometheus.Counter {
	return c.internLookups.WithLabelValues("hit")
}

// InternMisses returns the counter of pool lookups that allocated a new string.
func (c *Collector) InternMisses() prometheus.Counter {
	return c.internLookups.WithLabelValues("miss")
}
