package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/guttosm/blend-service/internal/metrics"
)

// TTL is a bounded LRU map whose entries expire after ttl without access.
// Reads and writes both renew an entry, so an active formulation session
// stays alive for as long as someone works on it. A janitor goroutine drops
// idle entries until Stop is called.
type TTL[V any] struct {
	name     string
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	order   *list.List // front is most recently used
	entries map[string]*list.Element
	stats   Metrics

	stop     chan struct{}
	stopOnce sync.Once
}

type ttlItem[V any] struct {
	key     string
	value   V
	expires time.Time
}

// NewTTL creates a cache holding at most capacity entries. name labels its
// Prometheus series.
func NewTTL[V any](name string, capacity int, ttl time.Duration) *TTL[V] {
	c := &TTL[V]{
		name:     name,
		capacity: max(capacity, 1),
		ttl:      ttl,
		now:      time.Now,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		stop:     make(chan struct{}),
	}
	go c.janitor(janitorInterval(ttl))
	return c
}

func janitorInterval(ttl time.Duration) time.Duration {
	if ttl > 0 && ttl < time.Minute {
		return ttl
	}
	return time.Minute
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}

	now := c.now()
	item := el.Value.(*ttlItem[V])
	if now.After(item.expires) {
		c.drop(el)
		c.stats.Misses++
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}

	item.expires = now.Add(c.ttl)
	c.order.MoveToFront(el)
	c.stats.Hits++
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return item.value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if el, ok := c.entries[key]; ok {
		item := el.Value.(*ttlItem[V])
		item.value, item.expires = value, expires
		c.order.MoveToFront(el)
		metrics.RecordCacheOperation(c.name, "set", "success")
		return
	}

	c.entries[key] = c.order.PushFront(&ttlItem[V]{key: key, value: value, expires: expires})
	if c.order.Len() > c.capacity {
		c.drop(c.order.Back())
		c.stats.Evictions++
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	metrics.RecordCacheOperation(c.name, "set", "success")
}

func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.drop(el)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

// Clear empties the cache and resets its counters.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.entries)
	c.stats = Metrics{}
	metrics.RecordCacheOperation(c.name, "clear", "success")
}

// Stop ends the janitor. The cache stays usable and expires lazily.
func (c *TTL[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TTL[V]) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.stats
	m.Size = c.order.Len()
	m.Capacity = c.capacity
	return m
}

func (c *TTL[V]) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.purgeExpired()
		case <-c.stop:
			return
		}
	}
}

// purgeExpired walks from the least recently used end. Expiry follows use
// order, so the walk stops at the first live entry.
func (c *TTL[V]) purgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for el := c.order.Back(); el != nil; {
		if !now.After(el.Value.(*ttlItem[V]).expires) {
			return
		}
		prev := el.Prev()
		c.drop(el)
		el = prev
	}
}

// drop must be called with mu held.
func (c *TTL[V]) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*ttlItem[V]).key)
}
