// Package config loads tokenizer settings from YAML.
//
// A document looks like:
//
//	delimiter: ","
//	quote: "\""
//	has_header: true
//	trim_whitespace: false
//	skip_empty_fields: false
//	segmentation: auto        # auto | prescan | incremental
//	intern:
//	  enabled: true
//	  max_entries: 10000
//	acceleration: true        # false keeps only the scalar strategies
//	logging:
//	  level: info
//	  encoding: json
//
// ${VAR} references are replaced with environment variables before parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-csvtok/pkg/csv"
	"github.com/shapestone/shape-csvtok/pkg/logger"
	"github.com/shapestone/shape-csvtok/pkg/metrics"
)

// Config mirrors the YAML document.
type Config struct {
	Delimiter       string        `yaml:"delimiter"`
	Quote           string        `yaml:"quote"`
	HasHeader       bool          `yaml:"has_header"`
	TrimWhitespace  bool          `yaml:"trim_whitespace"`
	SkipEmptyFields bool          `yaml:"skip_empty_fields"`
	Segmentation    string        `yaml:"segmentation"`
	Intern          InternConfig  `yaml:"intern"`
	Acceleration    bool          `yaml:"acceleration"`
	Logging         LoggingConfig `yaml:"logging"`
}

// InternConfig configures the string pool.
type InternConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// LoggingConfig configures the logger. An empty Level disables logging.
type LoggingConfig struct {
	Level       string   `yaml:"level"`
	Encoding    string   `yaml:"encoding"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths,omitempty"`
}

// Default returns the configuration used for keys a document leaves out.
func Default() *Config {
	return &Config{
		Delimiter:    ",",
		Quote:        `"`,
		Segmentation: "auto",
		Intern: InternConfig{
			MaxEntries: 10000,
		},
		Acceleration: true,
	}
}

// Load reads and parses the YAML file at filePath.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML document on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if _, err := cfg.dialect(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to filePath as YAML.
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables become empty strings.
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}

// Options builds csv.Options without metrics.
func (c *Config) Options() (csv.Options, error) {
	return c.Build(nil)
}

// Build turns the configuration into csv.Options: it creates the logger,
// the string pool and the strategy selector. When reg is not nil, row,
// strategy and intern metrics are registered on it.
func (c *Config) Build(reg prometheus.Registerer) (csv.Options, error) {
	opts, err := c.dialect()
	if err != nil {
		return csv.Options{}, err
	}

	if c.Logging.Level != "" {
		l, err := logger.New(logger.Config{
			Level:       c.Logging.Level,
			Development: c.Logging.Development,
			Encoding:    c.Logging.Encoding,
			OutputPaths: c.Logging.OutputPaths,
		})
		if err != nil {
			return csv.Options{}, err
		}
		opts.Logger = l
	}

	if reg != nil {
		m, err := metrics.NewCollector(reg)
		if err != nil {
			return csv.Options{}, err
		}
		opts.Metrics = m
	}

	if c.Intern.Enabled {
		opts.StringPool = csv.NewStringPool(c.Intern.MaxEntries, csv.WithPoolMetrics(opts.Metrics))
	}

	selOpts := []csv.SelectorOption{csv.WithLogger(opts.Logger)}
	if !c.Acceleration {
		selOpts = append(selOpts, csv.WithoutAcceleration())
	}
	if opts.Metrics != nil {
		selOpts = append(selOpts, csv.WithMetrics(opts.Metrics))
	}
	if c.Acceleration && opts.Metrics == nil && opts.Logger == nil {
		opts.Selector = csv.DefaultSelector()
	} else {
		opts.Selector = csv.NewSelector(selOpts...)
	}
	return opts, nil
}

// dialect returns the options covering the byte-level settings only.
func (c *Config) dialect() (csv.Options, error) {
	delim, err := parseByte("delimiter", c.Delimiter)
	if err != nil {
		return csv.Options{}, err
	}
	quote, err := parseByte("quote", c.Quote)
	if err != nil {
		return csv.Options{}, err
	}
	mode, err := csv.ParseSegmentationMode(strings.ToLower(c.Segmentation))
	if err != nil {
		return csv.Options{}, fmt.Errorf("config: %w", err)
	}

	opts := csv.Options{
		Delimiter:       delim,
		Quote:           quote,
		HasHeader:       c.HasHeader,
		TrimWhitespace:  c.TrimWhitespace,
		SkipEmptyFields: c.SkipEmptyFields,
		Segmentation:    mode,
	}
	if err := opts.Validate(); err != nil {
		return csv.Options{}, fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

var namedBytes = map[string]byte{
	"tab":       '\t',
	`\t`:        '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
}

// parseByte accepts a single byte, an escape such as \t, or a name such as
// "tab". The empty string selects the default.
func parseByte(key, s string) (byte, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) == 1 {
		return s[0], nil
	}
	if b, ok := namedBytes[strings.ToLower(s)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("config: %s must be a single byte, got %q", key, s)
}
