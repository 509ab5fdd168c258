package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.StrategyCounter("quoted-fallback").Inc()
	c.StrategyCounter("quoted-fallback").Inc()
	c.StrategyCounter("scalar-no-quote").Inc()
	c.Rows().Add(5)
	c.InternHits().Inc()
	c.InternMisses().Add(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.StrategyCounter("quoted-fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StrategyCounter("scalar-no-quote")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.Rows()))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.InternHits()))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.InternMisses()))

	n, err := testutil.GatherAndCount(reg, "csvtok_strategy_lines_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollector_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.Rows().Inc()
	second.Rows().Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(second.Rows()), "second collector shares the registered counters")
}

func TestCollector_NilRegisterer(t *testing.T) {
	c, err := NewCollector(nil)
	require.NoError(t, err)
	c.Rows().Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Rows()))
}
