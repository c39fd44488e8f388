package cache

import (
	"hash/fnv"
	"math/bits"
	"time"
)

const defaultShards = 16

// Sharded spreads keys over independent TTL caches so concurrent sessions
// rarely contend on one lock. Capacity and TTL apply per shard, with the
// total capacity split evenly.
type Sharded[V any] struct {
	shards    []*TTL[V]
	shardMask uint32
}

// NewSharded creates numShards shards, rounded up to a power of two.
func NewSharded[V any](name string, capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1 << bits.Len(uint(numShards-1))

	sc := &Sharded[V]{shards: make([]*TTL[V], n), shardMask: uint32(n - 1)}
	for i := range sc.shards {
		sc.shards[i] = NewTTL[V](name, max(capacity/n, 1), ttl)
	}
	return sc
}

func (sc *Sharded[V]) shard(key string) *TTL[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

func (sc *Sharded[V]) Get(key string) (V, bool) { return sc.shard(key).Get(key) }

func (sc *Sharded[V]) Set(key string, value V) { sc.shard(key).Set(key, value) }

func (sc *Sharded[V]) Invalidate(key string) { sc.shard(key).Invalidate(key) }

func (sc *Sharded[V]) Clear() { sc.each((*TTL[V]).Clear) }

func (sc *Sharded[V]) Stop() { sc.each((*TTL[V]).Stop) }

// Metrics sums the shard counters.
func (sc *Sharded[V]) Metrics() Metrics {
	var total Metrics
	sc.each(func(s *TTL[V]) {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	})
	return total
}

func (sc *Sharded[V]) each(fn func(*TTL[V])) {
	for _, s := range sc.shards {
		fn(s)
	}
}
