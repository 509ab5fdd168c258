//go:build !amd64

package simd

// getCPUFeatures reports no vector capabilities outside x86-64.
func getCPUFeatures() CPUFeatures {
	return CPUFeatures{}
}
