//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// getCPUFeatures reads AVX2 and AVX-512 support from CPUID via x/sys/cpu.
// AVX-512 byte compares need both the foundation and the BW extension.
func getCPUFeatures() CPUFeatures {
	return CPUFeatures{
		AVX2:   cpu.X86.HasAVX2,
		AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
	}
}
