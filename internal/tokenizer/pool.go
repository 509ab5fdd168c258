package tokenizer

import "sync"

// spanPool recycles span slices for callers that split a line and only need
// the spans for the duration of one call.
var spanPool = sync.Pool{
	New: func() interface{} {
		s := make([]Span, 0, 16)
		return &s
	},
}

// maxPooledSpans keeps pathological lines from pinning huge slices in the pool.
const maxPooledSpans = 4096

func getSpans() []Span {
	p := spanPool.Get().(*[]Span)
	return (*p)[:0]
}

func putSpans(s []Span) {
	if cap(s) > maxPooledSpans {
		return
	}
	s = s[:0]
	spanPool.Put(&s)
}

// GetSpans returns an empty span slice from the shared pool.
func GetSpans() []Span {
	return getSpans()
}

// PutSpans returns s to the shared pool. s must not be used afterwards.
func PutSpans(s []Span) {
	putSpans(s)
}

// bufferPool recycles scratch buffers for decoding fields that need rewriting.
var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 256)
		return &b
	},
}

const maxPooledBuffer = 64 << 10

// GetBuffer returns an empty scratch buffer from the shared pool.
func GetBuffer() *[]byte {
	b := bufferPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

// PutBuffer returns b to the shared pool. *b must not be used afterwards.
func PutBuffer(b *[]byte) {
	if cap(*b) > maxPooledBuffer {
		return
	}
	*b = (*b)[:0]
	bufferPool.Put(b)
}
