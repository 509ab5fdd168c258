package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-csvtok/pkg/csv"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, byte(','), opts.Delimiter)
	assert.Equal(t, byte('"'), opts.Quote)
	assert.Equal(t, csv.SegmentAuto, opts.Segmentation)
	assert.Nil(t, opts.StringPool)
	assert.Nil(t, opts.Logger)
	assert.Same(t, csv.DefaultSelector(), opts.Selector)
}

func TestParse_Document(t *testing.T) {
	doc := `
delimiter: tab
quote: "'"
has_header: true
trim_whitespace: true
skip_empty_fields: true
segmentation: Incremental
intern:
  enabled: true
  max_entries: 16
acceleration: false
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, byte('\t'), opts.Delimiter)
	assert.Equal(t, byte('\''), opts.Quote)
	assert.True(t, opts.HasHeader)
	assert.True(t, opts.TrimWhitespace)
	assert.True(t, opts.SkipEmptyFields)
	assert.Equal(t, csv.SegmentIncremental, opts.Segmentation)
	require.NotNil(t, opts.StringPool)
	assert.Equal(t, []string{csv.StrategyScalarNoQuote, csv.StrategyFallback}, opts.Selector.Names())

	got, err := csv.ParseAll([]byte("h1\th2\n'a\tb'\t c \n"), opts)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a\tb", "c"}}, got)
}

func TestParse_Delimiters(t *testing.T) {
	tests := []struct {
		value string
		want  byte
	}{
		{`","`, ','},
		{`";"`, ';'},
		{`"\t"`, '\t'},
		{`'\t'`, '\t'},
		{`pipe`, '|'},
		{`Semicolon`, ';'},
		{`""`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := Parse([]byte("delimiter: " + tt.value))
			require.NoError(t, err)
			opts, err := cfg.Options()
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Delimiter)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "delimiter: [unclosed"},
		{"multi byte delimiter", "delimiter: '::'"},
		{"newline delimiter", `delimiter: "\n"`},
		{"quote equals delimiter", "delimiter: ';'\nquote: ';'"},
		{"unknown segmentation", "segmentation: sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_EnvSubstitution(t *testing.T) {
	t.Setenv("CSVTOK_TEST_DELIM", ";")
	t.Setenv("CSVTOK_TEST_LEVEL", "debug")

	cfg, err := Parse([]byte("delimiter: '${CSVTOK_TEST_DELIM}'\nlogging:\n  level: ${CSVTOK_TEST_LEVEL}\n"))
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("CSVTOK_A", "x")
	assert.Equal(t, "x-x", substituteEnvVars("${CSVTOK_A}-${CSVTOK_A}"))
	assert.Equal(t, "pre  post", substituteEnvVars("pre ${CSVTOK_UNSET_VAR} post"))
	assert.Equal(t, "open ${never closed", substituteEnvVars("open ${never closed"))
}

func TestLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csvtok.yaml")

	cfg := Default()
	cfg.Delimiter = "|"
	cfg.HasHeader = true
	cfg.Intern.Enabled = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_Metrics(t *testing.T) {
	cfg := Default()
	cfg.Intern.Enabled = true
	cfg.Logging = LoggingConfig{Level: "error", Encoding: "json", OutputPaths: []string{"stderr"}}

	reg := prometheus.NewRegistry()
	opts, err := cfg.Build(reg)
	require.NoError(t, err)
	require.NotNil(t, opts.Metrics)
	require.NotNil(t, opts.Logger)

	got, err := csv.ParseAll([]byte("a,b\nc,d\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, got)
	assert.Equal(t, float64(2), testutil.ToFloat64(opts.Metrics.Rows()))

	// A second build on the same registry reuses the registered collectors.
	_, err = cfg.Build(reg)
	require.NoError(t, err)
}

func TestBuild_BadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	_, err := cfg.Options()
	assert.Error(t, err)
}
