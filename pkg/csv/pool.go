package csv

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shapestone/shape-csvtok/pkg/metrics"
)

// Pool deduplicates materialized strings.
type Pool interface {
	// GetOrAdd returns a string equal to b. Equal inputs may return the same
	// string. b is only read during the call.
	GetOrAdd(b []byte) string
}

// Materialize returns an owned string with the contents of b, through pool
// when one is given.
func Materialize(b []byte, pool Pool) string {
	if pool == nil {
		return string(b)
	}
	return pool.GetOrAdd(b)
}

const poolShards = 16

// StringPool is a concurrency-safe interning pool. Strings are spread over
// shards by xxhash so that concurrent lookups rarely contend.
//
// Once the pool holds maxEntries strings, lookups of new content return a
// fresh copy without storing it.
type StringPool struct {
	shards     [poolShards]poolShard
	maxEntries int64
	size       int64
	hits       int64
	misses     int64

	hitCounter  prometheus.Counter
	missCounter prometheus.Counter
}

type poolShard struct {
	mu      sync.RWMutex
	strings map[string]string
}

// StringPoolOption configures NewStringPool.
type StringPoolOption func(*StringPool)

// WithPoolMetrics counts hits and misses on c.
func WithPoolMetrics(c *metrics.Collector) StringPoolOption {
	return func(p *StringPool) {
		if c != nil {
			p.hitCounter = c.InternHits()
			p.missCounter = c.InternMisses()
		}
	}
}

// NewStringPool creates a pool holding at most maxEntries strings.
// maxEntries <= 0 means unbounded.
func NewStringPool(maxEntries int, opts ...StringPoolOption) *StringPool {
	p := &StringPool{maxEntries: int64(maxEntries)}
	for i := range p.shards {
		p.shards[i].strings = make(map[string]string, 64)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetOrAdd returns the interned string equal to b.
func (p *StringPool) GetOrAdd(b []byte) string {
	sh := &p.shards[xxhash.Sum64(b)%poolShards]

	sh.mu.RLock()
	if s, ok := sh.strings[string(b)]; ok {
		sh.mu.RUnlock()
		p.hit()
		return s
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if s, ok := sh.strings[string(b)]; ok {
		p.hit()
		return s
	}

	p.miss()
	s := string(b)
	if p.maxEntries > 0 && atomic.LoadInt64(&p.size) >= p.maxEntries {
		return s
	}
	sh.strings[s] = s
	atomic.AddInt64(&p.size, 1)
	return s
}

func (p *StringPool) hit() {
	atomic.AddInt64(&p.hits, 1)
	if p.hitCounter != nil {
		p.hitCounter.Inc()
	}
}

func (p *StringPool) miss() {
	atomic.AddInt64(&p.misses, 1)
	if p.missCounter != nil {
		p.missCounter.Inc()
	}
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	Size   int64
	Hits   int64
	Misses int64
}

// Stats returns the current pool counters.
func (p *StringPool) Stats() PoolStats {
	return PoolStats{
		Size:   atomic.LoadInt64(&p.size),
		Hits:   atomic.LoadInt64(&p.hits),
		Misses: atomic.LoadInt64(&p.misses),
	}
}

// Clear drops every interned string and resets the counters.
func (p *StringPool) Clear() {
	for i := range p.shards {
		sh := &p.shards[i]
		sh.mu.Lock()
		sh.strings = make(map[string]string, 64)
		sh.mu.Unlock()
	}
	atomic.StoreInt64(&p.size, 0)
	atomic.StoreInt64(&p.hits, 0)
	atomic.StoreInt64(&p.misses, 0)
}
