package simd

import (
	"math/bits"

	"github.com/shapestone/shape-csvtok/internal/dialect"
)

// Bitmasks holds the structural byte positions of one block of up to
// ChunkSize bytes. Bit i corresponds to byte i of the block.
type Bitmasks struct {
	Quotes     uint64
	Delimiters uint64
	Newlines   uint64
}

// Classify computes the structural masks of block under d.
func (s Scanner) Classify(block []byte, d dialect.Dialect) Bitmasks {
	return Bitmasks{
		Quotes:     s.Match(block, d.Quote),
		Delimiters: s.Match(block, d.Delimiter),
		Newlines:   s.Match(block, '\r') | s.Match(block, '\n'),
	}
}

// MaskIterator yields the positions of the set bits of a mask in ascending
// order.
type MaskIterator struct {
	mask uint64
}

// Iterate returns an iterator over m.
func Iterate(m uint64) MaskIterator {
	return MaskIterator{mask: m}
}

// Next returns the next set bit position.
func (it *MaskIterator) Next() (int, bool) {
	if it.mask == 0 {
		return 0, false
	}
	i := bits.TrailingZeros64(it.mask)
	it.mask &= it.mask - 1
	return i, true
}
