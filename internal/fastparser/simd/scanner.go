package simd

import (
	"math/bits"

	"github.com/shapestone/shape-csvtok/internal/dialect"
)

// Kind selects what FindNext looks for.
type Kind uint8

const (
	// Delimiter finds the dialect's field separator.
	Delimiter Kind = iota
	// Quote finds the dialect's quote byte.
	Quote
	// Newline finds \r or \n.
	Newline
	// AnyOf finds any structural byte: delimiter, quote, \r or \n.
	AnyOf
)

func (k Kind) String() string {
	switch k {
	case Delimiter:
		return "delimiter"
	case Quote:
		return "quote"
	case Newline:
		return "newline"
	case AnyOf:
		return "any"
	default:
		return "unknown"
	}
}

// Scanner searches byte slices a block at a time with a Kernel.
// Full blocks go through the kernel; the tail shorter than a block is scanned
// byte by byte. The zero value is not usable; use NewScanner.
type Scanner struct {
	k     Kernel
	lanes int
}

// NewScanner wraps k.
func NewScanner(k Kernel) Scanner {
	return Scanner{k: k, lanes: k.Lanes()}
}

// Kernel returns the kernel used by s.
func (s Scanner) Kernel() Kernel {
	return s.k
}

// FindNext returns the index of the first byte of the given kind in b, or -1.
func (s Scanner) FindNext(kind Kind, b []byte, d dialect.Dialect) int {
	switch kind {
	case Delimiter:
		return s.IndexByte(b, d.Delimiter)
	case Quote:
		return s.IndexByte(b, d.Quote)
	case Newline:
		return s.IndexAny(b, '\r', '\n')
	default:
		return s.IndexAny(b, d.Delimiter, d.Quote, '\r', '\n')
	}
}

// IndexByte returns the index of the first c in b, or -1.
func (s Scanner) IndexByte(b []byte, c byte) int {
	i := 0
	for ; i+s.lanes <= len(b); i += s.lanes {
		if m := s.k.Match(b[i:i+s.lanes], c); m != 0 {
			return i + bits.TrailingZeros64(m)
		}
	}
	for ; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// IndexAny returns the index of the first byte of b that is in set, or -1.
func (s Scanner) IndexAny(b []byte, set ...byte) int {
	i := 0
	for ; i+s.lanes <= len(b); i += s.lanes {
		block := b[i : i+s.lanes]
		var m uint64
		for _, c := range set {
			m |= s.k.Match(block, c)
		}
		if m != 0 {
			return i + bits.TrailingZeros64(m)
		}
	}
	for ; i < len(b); i++ {
		for _, c := range set {
			if b[i] == c {
				return i
			}
		}
	}
	return -1
}

// Match returns the mask of c over b, which may be up to ChunkSize bytes long.
// Bytes past the last full kernel block are compared one at a time.
func (s Scanner) Match(b []byte, c byte) uint64 {
	if len(b) > ChunkSize {
		b = b[:ChunkSize]
	}
	var m uint64
	i := 0
	for ; i+s.lanes <= len(b); i += s.lanes {
		m |= s.k.Match(b[i:i+s.lanes], c) << uint(i)
	}
	for ; i < len(b); i++ {
		if b[i] == c {
			m |= 1 << uint(i)
		}
	}
	return m
}
