package csv

import (
	"regexp"
	"strings"

	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/fastparser/simd"
	"github.com/shapestone/shape-csvtok/internal/lines"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// candidateDelimiters are tried in order; earlier ones win ties.
var candidateDelimiters = []byte{',', '\t', ';', '|'}

// Sniffer detects the delimiter and header presence of a CSV sample.
type Sniffer struct {
	sample    []byte
	quote     byte
	delimiter byte
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a Sniffer over sample. For best results provide at
// least 2-3 lines. The sample is borrowed.
func NewSniffer(sample []byte) *Sniffer {
	return &Sniffer{sample: sample, quote: dialect.DefaultQuote}
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	ls := s.lines()
	s.delimiter = s.detectDelimiter(ls)
	s.hasHeader = s.detectHeader(ls)
	s.analyzed = true
}

// lines returns the non-empty lines of the sample.
func (s *Sniffer) lines() [][]byte {
	var out [][]byte
	for _, l := range lines.Index(s.sample, simd.Best()) {
		if l.Len() > 0 {
			out = append(out, l.Bytes(s.sample))
		}
	}
	return out
}

// Delimiter returns the detected field delimiter, ',' when nothing fits.
func (s *Sniffer) Delimiter() byte {
	s.analyze()
	return s.delimiter
}

// HasHeader reports whether the first line looks like a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Options returns DefaultOptions with the detected delimiter and header flag.
func (s *Sniffer) Options() Options {
	s.analyze()
	opts := DefaultOptions()
	opts.Delimiter = s.delimiter
	opts.HasHeader = s.hasHeader
	return opts
}

// detectDelimiter scores each candidate by its quote-aware count on the first
// line, with a tenfold bonus when every line has the same count.
func (s *Sniffer) detectDelimiter(ls [][]byte) byte {
	best := byte(dialect.DefaultDelimiter)
	if len(ls) == 0 {
		return best
	}
	bestScore := 0
	for _, delim := range candidateDelimiters {
		d := dialect.Dialect{Delimiter: delim, Quote: s.quote}
		first := tokenizer.Count(ls[0], d) - 1
		if first == 0 {
			continue
		}
		score := first * 10
		for _, l := range ls[1:] {
			if tokenizer.Count(l, d)-1 != first {
				score = first
				break
			}
		}
		if score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// detectHeader compares how header-like and data-like the first line's
// fields look.
func (s *Sniffer) detectHeader(ls [][]byte) bool {
	if len(ls) < 2 {
		return false
	}
	d := dialect.Dialect{Delimiter: s.delimiter, Quote: s.quote, Trim: true}

	headerScore, dataScore := 0, 0
	for _, field := range tokenizer.Strings(ls[0], d) {
		field = strings.TrimSpace(field)
		if isLikelyHeader(field) {
			headerScore++
		}
		if isLikelyData(field) {
			dataScore++
		}
	}
	return headerScore > dataScore
}

var (
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // snake_case or identifier
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),      // camelCase
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
)

func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, p := range headerPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, p := range datePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric reports whether s is an optionally negative decimal number.
func isNumeric(s string) bool {
	if s != "" && s[0] == '-' {
		s = s[1:]
	}
	hasDot := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			if hasDot {
				return false
			}
			hasDot = true
		case c < '0' || c > '9':
			return false
		}
	}
	return s != "" && s != "."
}
