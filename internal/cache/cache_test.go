package cache

// Test Plan for Cache:
// - Get on an empty cache misses
// - Set then Get hits and returns the stored value
// - Entries older than the TTL are removed on read
// - At capacity the insertion-oldest entry is evicted, regardless of reads
// - Re-setting a key moves it to the newest position
// - GetOrCompute runs compute once and caches the result
// - Concurrent GetOrCompute calls for one key share a single computation
// - A failed computation is shared by waiters but not cached
// - Clear empties the cache and discards results of in-flight computations
// - Stats and metrics track hits, misses, evictions and expirations

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	c := New[string]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_TTLExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := New[int](WithTTL(time.Minute), WithClock(clock.Now))

	c.Set("k", 42)
	clock.Advance(time.Minute)
	v, ok := c.Get("k")
	require.True(t, ok, "entry exactly at TTL is still valid")
	assert.Equal(t, 42, v)

	clock.Advance(time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on read")
	assert.Equal(t, int64(1), c.Stats().Expirations)
}

func TestCache_FIFOEviction(t *testing.T) {
	t.Parallel()

	c := New[int](WithCapacity(2))

	c.Set("a", 1)
	c.Set("b", 2)

	// Reading "a" does not protect it: eviction follows insertion order.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", 3)

	_, ok = c.Get("a")
	assert.False(t, ok, "insertion-oldest entry should be evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestCache_SetExistingKeyRenewsPosition(t *testing.T) {
	t.Parallel()

	c := New[int](WithCapacity(2))

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)
	c.Set("c", 3)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_GetOrCompute(t *testing.T) {
	t.Parallel()

	c := New[string]()
	var calls int

	compute := func() (string, error) {
		calls++
		return "computed", nil
	}

	v, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	v, err = c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)
	assert.Equal(t, 1, calls)
}

func TestCache_GetOrComputeSingleFlight(t *testing.T) {
	t.Parallel()

	c := New[int]()

	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	compute := func() (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return 7, nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]int, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = c.GetOrCompute("k", compute)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrCompute("k", compute)
		}(i)
	}

	// Give the waiters time to join the in-flight computation.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, 7, results[i])
	}
}

func TestCache_GetOrComputeSharedFailure(t *testing.T) {
	t.Parallel()

	c := New[int]()
	boom := errors.New("boom")

	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	failing := func() (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return 0, boom
	}

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = c.GetOrCompute("k", failing)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.GetOrCompute("k", failing)
		}(i)
	}

	// Give the waiters time to join the in-flight computation.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range callers {
		assert.ErrorIs(t, errs[i], boom, "caller %d", i)
	}
	assert.Equal(t, 0, c.Len())

	var retried atomic.Int32
	v, err := c.GetOrCompute("k", func() (int, error) {
		retried.Add(1)
		return 9, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, int32(1), retried.Load(), "a failure is not cached, so the next call computes afresh")
}

func TestCache_GetOrComputeFailureNotCached(t *testing.T) {
	t.Parallel()

	c := New[int]()
	boom := errors.New("boom")

	_, err := c.GetOrCompute("k", func() (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("k", func() (int, error) {
		return 5, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Computes)
	assert.Equal(t, int64(1), stats.Failures)
}

func TestCache_ClearDiscardsInFlight(t *testing.T) {
	t.Parallel()

	c := New[string]()
	c.Set("other", "x")

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})

	var got string
	go func() {
		defer close(done)
		got, _ = c.GetOrCompute("k", func() (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	c.Clear()
	assert.Equal(t, 0, c.Len())

	// A new caller after Clear starts its own computation.
	v, err := c.GetOrCompute("k", func() (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	close(release)
	<-done
	assert.Equal(t, "stale", got, "original caller still receives its result")

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "fresh", v, "late result from before Clear must not overwrite")
}

func TestCache_DistinctKeysComputeIndependently(t *testing.T) {
	t.Parallel()

	c := New[string](WithCapacity(10))

	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			v, err := c.GetOrCompute(key, func() (string, error) {
				return key, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, key, v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, c.Len())
}

func TestCache_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	clock := newFakeClock()
	c := New[int](WithCapacity(1), WithTTL(time.Second), WithClock(clock.Now), WithMetrics(m))

	c.Get("a")
	c.Set("a", 1)
	c.Get("a")
	c.Set("b", 2)
	clock.Advance(2 * time.Second)
	c.Get("b")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evictions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.expirations))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.entries))

	_, err := c.GetOrCompute("c", func() (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.computes.WithLabelValues("ok")))
}

func TestCache_OptionsIgnoreInvalidValues(t *testing.T) {
	t.Parallel()

	c := New[int](WithCapacity(0), WithTTL(-time.Second), WithClock(nil), WithLogger(nil))
	assert.Equal(t, DefaultCapacity, c.capacity)
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.NotNil(t, c.now)
	assert.NotNil(t, c.logger)
}
