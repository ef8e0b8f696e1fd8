package bptree

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// MinCacheSize is the smallest lookup cache capacity; smaller requests
// are raised to it.
const MinCacheSize = 16

// lookupCache memoizes point lookups in front of the tree descent.
// Only positive results are cached; Insert and Delete invalidate the
// touched key so the cache can never serve a stale value.
type lookupCache[K comparable, V any] struct {
	lru *freelru.LRU[K, V]
}

func newLookupCache[K cmp.Ordered, V any](size int) *lookupCache[K, V] {
	size = max(size, MinCacheSize)
	// The capacity is clamped above zero, so construction cannot fail.
	lru, _ := freelru.New[K, V](uint32(size), hashKey[K])
	return &lookupCache[K, V]{lru: lru}
}

func (c *lookupCache[K, V]) get(key K) (V, bool) {
	return c.lru.Get(key)
}

func (c *lookupCache[K, V]) put(key K, value V) {
	c.lru.Add(key, value)
}

func (c *lookupCache[K, V]) invalidate(key K) {
	c.lru.Remove(key)
}

// CacheMetrics reports lookup cache counters.
type CacheMetrics struct {
	Hits      uint64
	Misses    uint64
	Inserts   uint64
	Evictions uint64
	Removals  uint64
}

// CacheMetrics returns the lookup cache counters, or the zero value
// when the tree was built without WithLookupCache.
func (t *Tree[K, V]) CacheMetrics() CacheMetrics {
	if t.cache == nil {
		return CacheMetrics{}
	}
	m := t.cache.lru.Metrics()
	return CacheMetrics{
		Hits:      m.Hits,
		Misses:    m.Misses,
		Inserts:   m.Inserts,
		Evictions: m.Evictions,
		Removals:  m.Removals,
	}
}

// hashKey maps an ordered key to the 32-bit hash freelru requires,
// using xxhash over the key's natural binary or string form.
func hashKey[K comparable](key K) uint32 {
	switch k := any(key).(type) {
	case string:
		return uint32(xxhash.Sum64String(k))
	case int:
		return hashUint64(uint64(k))
	case int8:
		return hashUint64(uint64(k))
	case int16:
		return hashUint64(uint64(k))
	case int32:
		return hashUint64(uint64(k))
	case int64:
		return hashUint64(uint64(k))
	case uint:
		return hashUint64(uint64(k))
	case uint8:
		return hashUint64(uint64(k))
	case uint16:
		return hashUint64(uint64(k))
	case uint32:
		return hashUint64(uint64(k))
	case uint64:
		return hashUint64(k)
	case uintptr:
		return hashUint64(uint64(k))
	case float32:
		return hashUint64(uint64(math.Float32bits(k)))
	case float64:
		return hashUint64(math.Float64bits(k))
	default:
		// Named ordered types land here; formatting is slower but
		// hashes correctly.
		return uint32(xxhash.Sum64String(fmt.Sprint(key)))
	}
}

func hashUint64(v uint64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return uint32(xxhash.Sum64(buf[:]))
}
