package csv

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/fastparser"
	"github.com/shapestone/shape-csvtok/pkg/logger"
	"github.com/shapestone/shape-csvtok/pkg/metrics"
)

// SegmentationMode selects how Enumerate finds line boundaries.
type SegmentationMode int

const (
	// SegmentAuto pre-scans buffers between PrescanMin and PrescanMax bytes
	// and scans incrementally otherwise.
	SegmentAuto SegmentationMode = iota
	// SegmentPrescan indexes every line before the first row is returned.
	SegmentPrescan
	// SegmentIncremental finds each line as it is requested.
	SegmentIncremental
)

// Buffer size range for which SegmentAuto pre-scans.
const (
	PrescanMin = 4 << 10
	PrescanMax = 256 << 20
)

// String returns the string representation of SegmentationMode.
func (m SegmentationMode) String() string {
	switch m {
	case SegmentAuto:
		return "auto"
	case SegmentPrescan:
		return "prescan"
	case SegmentIncremental:
		return "incremental"
	default:
		return fmt.Sprintf("SegmentationMode(%d)", m)
	}
}

// ParseSegmentationMode parses "auto", "prescan" or "incremental".
// The empty string means auto.
func ParseSegmentationMode(s string) (SegmentationMode, error) {
	switch s {
	case "", "auto":
		return SegmentAuto, nil
	case "prescan":
		return SegmentPrescan, nil
	case "incremental":
		return SegmentIncremental, nil
	default:
		return SegmentAuto, &OptionsError{Field: "Segmentation", Message: fmt.Sprintf("unknown mode %q", s)}
	}
}

// resolve picks the concrete mode for a buffer of n bytes.
func (m SegmentationMode) resolve(n int) SegmentationMode {
	if m != SegmentAuto {
		return m
	}
	if n >= PrescanMin && n <= PrescanMax {
		return SegmentPrescan
	}
	return SegmentIncremental
}

// Options configures tokenization. The zero value is usable: a zero
// Delimiter or Quote means the default comma or double quote.
type Options struct {
	// Delimiter separates fields. Default: ','
	Delimiter byte

	// Quote opens a quoted field when it is the first byte of the field.
	// Default: '"'
	Quote byte

	// HasHeader makes Enumerate consume the first line as a header.
	HasHeader bool

	// TrimWhitespace trims ASCII whitespace around unquoted fields when they
	// are materialized. Quoted fields are never trimmed.
	TrimWhitespace bool

	// SkipEmptyFields is advisory. Row and Field accessors still report
	// empty fields at their positions; consumers such as BuildAST honour it.
	SkipEmptyFields bool

	// StringPool, if set, interns every string the package materializes.
	StringPool Pool

	// Segmentation selects how Enumerate finds lines. Default: SegmentAuto
	Segmentation SegmentationMode

	// Selector overrides the strategy table. Nil uses DefaultSelector().
	Selector *Selector

	// Logger receives debug output from Enumerate. Nil disables logging.
	Logger *zap.Logger

	// Metrics, if set, counts enumerated rows.
	Metrics *metrics.Collector
}

// DefaultOptions returns comma-separated, double-quoted options with no
// header and no trimming.
func DefaultOptions() Options {
	return Options{
		Delimiter: dialect.DefaultDelimiter,
		Quote:     dialect.DefaultQuote,
	}
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = dialect.DefaultDelimiter
	}
	if o.Quote == 0 {
		o.Quote = dialect.DefaultQuote
	}
	return o
}

// Validate checks if the options are valid.
// Zero Delimiter and Quote are replaced by their defaults before checking.
func (o Options) Validate() error {
	o = o.withDefaults()
	if err := validByte("Delimiter", o.Delimiter); err != nil {
		return err
	}
	if err := validByte("Quote", o.Quote); err != nil {
		return err
	}
	if o.Delimiter == o.Quote {
		return &OptionsError{Field: "Quote", Message: "quote same as delimiter"}
	}
	if o.Segmentation < SegmentAuto || o.Segmentation > SegmentIncremental {
		return &OptionsError{Field: "Segmentation", Message: fmt.Sprintf("unknown mode %d", o.Segmentation)}
	}
	return nil
}

func validByte(field string, c byte) error {
	switch {
	case c >= 0x80:
		return &OptionsError{Field: field, Message: "must be an ASCII byte"}
	case c == '\r' || c == '\n':
		return &OptionsError{Field: field, Message: "cannot be a line terminator"}
	}
	return nil
}

func (o Options) dialect() dialect.Dialect {
	return dialect.Dialect{
		Delimiter: o.Delimiter,
		Quote:     o.Quote,
		Trim:      o.TrimWhitespace,
	}
}

// config is the validated, defaulted form of Options shared by every row and
// field derived from one call.
type config struct {
	d         dialect.Dialect
	pool      Pool
	sel       *fastparser.Selector
	log       *zap.Logger
	metrics   *metrics.Collector
	hasHeader bool
	skipEmpty bool
	mode      SegmentationMode
}

func (o Options) resolve() (*config, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	o = o.withDefaults()
	sel := o.Selector
	if sel == nil {
		sel = fastparser.Default()
	}
	return &config{
		d:         o.dialect(),
		pool:      o.StringPool,
		sel:       sel,
		log:       logger.OrNop(o.Logger),
		metrics:   o.Metrics,
		hasHeader: o.HasHeader,
		skipEmpty: o.SkipEmptyFields,
		mode:      o.Segmentation,
	}, nil
}
