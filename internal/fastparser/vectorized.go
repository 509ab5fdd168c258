package fastparser

import (
	"github.com/shapestone/shape-csvtok/internal/dialect"
	"github.com/shapestone/shape-csvtok/internal/fastparser/simd"
	"github.com/shapestone/shape-csvtok/internal/tokenizer"
)

// vectorized splits quote-free lines a block at a time: each 64-byte block is
// classified and every bit of its delimiter mask closes a field.
type vectorized struct {
	name      string
	priority  int
	available bool
	scan      simd.Scanner
}

// VectorizedAVX2 returns the 32-lane strategy. It is available on hosts
// with AVX2.
func VectorizedAVX2() Strategy {
	return newVectorized(NameAVX2, PriorityAVX2, simd.HasAVX2(), simd.Lanes32{})
}

// VectorizedAVX512 returns the 64-lane strategy. It is available on hosts
// with AVX-512 byte instructions.
func VectorizedAVX512() Strategy {
	return newVectorized(NameAVX512, PriorityAVX512, simd.HasAVX512(), simd.Lanes64{})
}

func newVectorized(name string, priority int, available bool, k simd.Kernel) *vectorized {
	return &vectorized{
		name:      name,
		priority:  priority,
		available: available,
		scan:      simd.NewScanner(k),
	}
}

func (v *vectorized) Name() string    { return v.name }
func (v *vectorized) Priority() int   { return v.priority }
func (v *vectorized) Available() bool { return v.available }

func (v *vectorized) CanHandle(line []byte, d dialect.Dialect) bool {
	return v.available && d.ASCIIDelimiter() && v.scan.IndexByte(line, d.Quote) < 0
}

func (v *vectorized) Split(line []byte, d dialect.Dialect, dst []tokenizer.Span) []tokenizer.Span {
	dst = dst[:0]
	start := 0
	for i := 0; i < len(line); i += simd.ChunkSize {
		block := line[i:min(i+simd.ChunkSize, len(line))]
		it := simd.Iterate(v.scan.Classify(block, d).Delimiters)
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			end := i + p
			dst = append(dst, tokenizer.Span{Start: start, End: end})
			start = end + 1
		}
	}
	return append(dst, tokenizer.Span{Start: start, End: len(line)})
}
