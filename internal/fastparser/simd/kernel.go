package simd

import "encoding/binary"

// Kernel compares one block of bytes against a target byte.
type Kernel interface {
	// Name identifies the kernel in logs and metrics.
	Name() string
	// Lanes is the block width in bytes. It never exceeds 64.
	Lanes() int
	// Match returns a mask with bit i set when block[i] == c.
	// len(block) must equal Lanes().
	Match(block []byte, c byte) uint64
}

// Scalar compares one byte at a time. It is the reference every other kernel
// must agree with.
type Scalar struct{}

func (Scalar) Name() string { return "scalar" }
func (Scalar) Lanes() int   { return 64 }

func (Scalar) Match(block []byte, c byte) uint64 {
	var m uint64
	for i, b := range block[:64] {
		if b == c {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Lanes32 processes 32 bytes per block, the width of an AVX2 register.
type Lanes32 struct{}

func (Lanes32) Name() string { return "lanes32" }
func (Lanes32) Lanes() int   { return 32 }

func (Lanes32) Match(block []byte, c byte) uint64 {
	_ = block[31]
	pattern := broadcast(c)
	return uint64(matchWord(block[0:], pattern)) |
		uint64(matchWord(block[8:], pattern))<<8 |
		uint64(matchWord(block[16:], pattern))<<16 |
		uint64(matchWord(block[24:], pattern))<<24
}

// Lanes64 processes 64 bytes per block, the width of an AVX-512 register.
type Lanes64 struct{}

func (Lanes64) Name() string { return "lanes64" }
func (Lanes64) Lanes() int   { return 64 }

func (Lanes64) Match(block []byte, c byte) uint64 {
	_ = block[63]
	pattern := broadcast(c)
	var m uint64
	for w := 0; w < 8; w++ {
		m |= uint64(matchWord(block[w*8:], pattern)) << uint(w*8)
	}
	return m
}

const (
	lo7  = 0x7F7F7F7F7F7F7F7F
	ones = 0x0101010101010101
)

func broadcast(c byte) uint64 {
	return ones * uint64(c)
}

// matchWord returns one bit per byte of the 8-byte little-endian word at b
// that equals the broadcast pattern.
func matchWord(b []byte, pattern uint64) uint8 {
	x := binary.LittleEndian.Uint64(b) ^ pattern
	return movemask(zeroBytes(x))
}

// zeroBytes sets the high bit of every zero byte of x and clears everything
// else. Unlike the (x-ones)&^x trick it has no false positives from borrows,
// so the whole mask is usable and not just its lowest set bit.
func zeroBytes(x uint64) uint64 {
	t := (x & lo7) + lo7
	return ^(t | x | lo7)
}

// movemask gathers the high bit of each byte of m into the low 8 bits.
func movemask(m uint64) uint8 {
	return uint8(((m >> 7) * 0x0102040810204080) >> 56)
}
