// Package simd provides wide-lane byte scanning for the CSV tokenizer.
//
// A Kernel compares a block of bytes against one target byte and returns a bit
// mask of the matching positions, the same shape a vector compare followed by a
// movemask produces. Lanes32 mirrors the 32-byte AVX2 register width and
// Lanes64 the 64-byte AVX-512 width; both are implemented with 64-bit SWAR
// words. Which kernels are used is gated on the CPU features detected at start.
package simd

import "sync"

// ChunkSize is the width of one structural bitmask block.
const ChunkSize = 64

// CPUFeatures holds the detected vector capabilities of the host.
type CPUFeatures struct {
	AVX2   bool
	AVX512 bool
}

var (
	cpuCaps     CPUFeatures
	cpuCapsOnce sync.Once
)

// Features returns the host capabilities. Detection runs once per process.
func Features() CPUFeatures {
	cpuCapsOnce.Do(func() {
		cpuCaps = getCPUFeatures()
	})
	return cpuCaps
}

// HasAVX2 reports whether 32-lane scanning is enabled on this host.
func HasAVX2() bool {
	return Features().AVX2
}

// HasAVX512 reports whether 64-lane scanning is enabled on this host.
func HasAVX512() bool {
	return Features().AVX512
}

// Best returns the widest scanner the host supports. Hosts without vector
// support get the scalar scanner.
func Best() Scanner {
	f := Features()
	switch {
	case f.AVX512:
		return NewScanner(Lanes64{})
	case f.AVX2:
		return NewScanner(Lanes32{})
	default:
		return ScalarScanner()
	}
}

// ScalarScanner returns the byte-at-a-time reference scanner.
// It is available everywhere and is the baseline for correctness tests.
func ScalarScanner() Scanner {
	return NewScanner(Scalar{})
}
