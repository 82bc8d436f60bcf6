package cache

// Implementation Plan:
// 1. Entry table: map for lookup + list for insertion order (front = oldest)
// 2. Get - lazy TTL check on read, expired entries removed
// 3. Set - evict insertion-oldest at capacity, then insert with current time
// 4. GetOrCompute - cached value, else join or start one computation per key
// 5. Clear - drop entries and in-flight state; late results are discarded

import (
	"container/list"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCapacity is the default number of completed entries kept.
	DefaultCapacity = 100

	// DefaultTTL is the default lifetime of a cached entry.
	DefaultTTL = 5 * time.Minute
)

type options struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a Cache.
type Option func(*options)

// WithCapacity sets the maximum number of completed entries. Values below 1
// are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithTTL sets how long an entry stays valid after insertion. Values below 1
// are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger for eviction and compute diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records cache activity in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Stats is a point-in-time copy of cache counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
	Computes    int64 `json:"computes"`
	Failures    int64 `json:"failures"`
	Entries     int   `json:"entries"`
}

type entry[V any] struct {
	key       string
	value     V
	createdAt time.Time
}

// Cache is a bounded, time-expiring memo with request coalescing.
//
// Capacity eviction is FIFO: the insertion-oldest entry goes first and
// reads never renew an entry's position. Expiry is checked lazily on read.
// At most one computation per key runs at a time; concurrent callers share
// its outcome. Only successful results are cached.
//
// All methods are safe for concurrent use.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	inflight   *singleflight.Group
	generation uint64
	stats      Stats

	capacity int
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
	metrics  *Metrics
}

// New creates an empty cache.
func New[V any](opts ...Option) *Cache[V] {
	o := options{
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		entries:  make(map[string]*list.Element, o.capacity),
		order:    list.New(),
		inflight: &singleflight.Group{},
		capacity: o.capacity,
		ttl:      o.ttl,
		now:      o.now,
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// Get returns the value stored under key. An entry older than the TTL is
// removed and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lookupLocked(key)
	if ok {
		c.stats.Hits++
		c.metrics.hit()
	} else {
		c.stats.Misses++
		c.metrics.miss()
	}
	return v, ok
}

// Set stores value under key with the current time. At capacity the
// insertion-oldest entry is evicted first. Re-setting a key replaces it and
// moves it to the newest position.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// GetOrCompute returns the cached value for key, or runs compute to produce
// it. While a computation for key is in flight, further callers wait for it
// instead of starting their own and receive the same value or error. A
// failed computation is not cached; the next call computes afresh.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	group, generation := c.inflight, c.generation
	c.mu.Unlock()

	res, err, _ := group.Do(key, func() (any, error) {
		// A computation for key may have completed between Get and Do.
		c.mu.Lock()
		if v, ok := c.lookupLocked(key); ok {
			c.mu.Unlock()
			return v, nil
		}
		c.stats.Computes++
		c.mu.Unlock()

		v, err := compute()
		c.metrics.computed(err)
		if err != nil {
			c.mu.Lock()
			c.stats.Failures++
			c.mu.Unlock()
			c.logger.Debug("cache computation failed", slog.String("key", key), slog.Any("error", err))
			return nil, err
		}

		c.mu.Lock()
		// Results of computations started before Clear are not kept.
		if c.generation == generation {
			c.setLocked(key, v)
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

// Clear drops every entry and forgets in-flight computations. Callers
// already waiting still receive their computation's outcome, but it is not
// stored.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	c.inflight = &singleflight.Group{}
	c.generation++
	c.metrics.setEntries(0)
}

// Len returns the number of stored entries, expired ones included until
// they are read.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a copy of the cache counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = c.order.Len()
	return s
}

// lookupLocked returns a valid entry's value, removing it if expired.
// Caller must hold c.mu.
func (c *Cache[V]) lookupLocked(key string) (V, bool) {
	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.now().Sub(e.createdAt) > c.ttl {
		c.removeLocked(el)
		c.stats.Expirations++
		c.metrics.expired()
		return zero, false
	}
	return e.value, true
}

// setLocked inserts or replaces key. Caller must hold c.mu.
func (c *Cache[V]) setLocked(key string, value V) {
	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
	}
	for c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.logger.Debug("evicting cache entry", slog.String("key", oldest.Value.(*entry[V]).key))
		c.removeLocked(oldest)
		c.stats.Evictions++
		c.metrics.evicted()
	}
	c.entries[key] = c.order.PushBack(&entry[V]{key: key, value: value, createdAt: c.now()})
	c.metrics.setEntries(c.order.Len())
}

// removeLocked unlinks el from both tables. Caller must hold c.mu.
func (c *Cache[V]) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry[V]).key)
	c.metrics.setEntries(c.order.Len())
}
