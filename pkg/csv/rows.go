package csv

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/shapestone/shape-csvtok/internal/fastparser/simd"
	"github.com/shapestone/shape-csvtok/internal/lines"
)

// Rows enumerates the rows of a buffer. It is not safe for concurrent use.
//
//	rows, err := csv.Enumerate(buf, opts)
//	if err != nil {
//	    return err
//	}
//	for rows.Next() {
//	    row := rows.Row()
//	    f, _ := row.Field(2)
//	    use(f.Bytes())
//	}
type Rows struct {
	buf  []byte
	cfg  *config
	mode SegmentationMode

	// Pre-scan mode.
	index []lines.Line
	next  int

	// Incremental mode.
	cursor *lines.Cursor

	row     Row
	header  *Row
	lineNo  int
	dataIdx int
	counter prometheus.Counter
}

// Enumerate returns an enumerator over the rows of buf. buf is borrowed and
// must not be modified while rows or fields derived from it are in use.
func Enumerate(buf []byte, opts Options) (*Rows, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	r := &Rows{
		buf:  buf,
		cfg:  cfg,
		mode: cfg.mode.resolve(len(buf)),
	}
	r.row.cfg = cfg
	if cfg.metrics != nil {
		r.counter = cfg.metrics.Rows()
	}

	scanner := simd.Best()
	if r.mode == SegmentPrescan {
		r.index = lines.Index(buf, scanner)
	} else {
		r.cursor = lines.NewCursor(buf, scanner)
	}

	if cfg.hasHeader {
		if l, ok := r.nextLine(); ok {
			r.header = &Row{cfg: cfg}
			r.header.reset(l.Bytes(buf), l.Start, -1, r.lineNo)
		}
	}

	cfg.log.Debug("enumerating buffer",
		zap.Int("bytes", len(buf)),
		zap.Stringer("segmentation", r.mode),
		zap.String("scanner", scanner.Kernel().Name()),
		zap.Bool("header", r.header != nil),
	)
	return r, nil
}

// EnumerateString is Enumerate over the bytes of s, without copying.
func EnumerateString(s string, opts Options) (*Rows, error) {
	return Enumerate(unsafeBytes(s), opts)
}

func (r *Rows) nextLine() (lines.Line, bool) {
	if r.cursor != nil {
		l, ok := r.cursor.Next()
		if ok {
			r.lineNo++
		}
		return l, ok
	}
	if r.next >= len(r.index) {
		return lines.Line{}, false
	}
	l := r.index[r.next]
	r.next++
	r.lineNo++
	return l, true
}

// Next advances to the next row and reports whether there is one.
// It invalidates the Row and Fields obtained before the call.
func (r *Rows) Next() bool {
	l, ok := r.nextLine()
	if !ok {
		return false
	}
	r.row.reset(l.Bytes(r.buf), l.Start, r.dataIdx, r.lineNo)
	r.dataIdx++
	if r.counter != nil {
		r.counter.Inc()
	}
	return true
}

// Row returns the current row.
func (r *Rows) Row() *Row {
	return &r.row
}

// Header returns the header row when Options.HasHeader was set and the
// buffer was not empty. Its Index is -1.
func (r *Rows) Header() (*Row, bool) {
	return r.header, r.header != nil
}

// Err returns the error, if any, that stopped enumeration. Tokenization
// itself never fails, so this is nil for every buffer Enumerate accepted.
func (r *Rows) Err() error {
	return nil
}

// Mode returns the segmentation mode actually in use.
func (r *Rows) Mode() SegmentationMode {
	return r.mode
}
