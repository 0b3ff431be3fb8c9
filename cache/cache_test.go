package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResultCacheRoundTrip(t *testing.T) {
	c := NewSearchResultCache(2, 5*time.Second)

	_, ok := c.Get("hello", "default")
	assert.False(t, ok)

	c.Set("hello", "default", map[string]string{"status": "success"})

	got, ok := c.Get("hello", "default")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"status": "success"}, got)

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestSearchResultCacheKeyIncludesStore(t *testing.T) {
	c := NewSearchResultCache(4, time.Minute)
	c.Set("query", "store-a", "a")
	c.Set("query", "store-b", "b")

	got, ok := c.Get("query", "store-a")
	require.True(t, ok)
	assert.Equal(t, "a", got)

	got, ok = c.Get("query", "store-b")
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestSearchResultCacheTTLExpiry(t *testing.T) {
	c := NewSearchResultCache(2, time.Second)

	now := time.Now()
	c.core.now = func() time.Time { return now }

	c.Set("hello", "default", "value")

	_, ok := c.Get("hello", "default")
	require.True(t, ok)

	// Advance past the TTL: the entry reads as absent, counts as a
	// miss, and is evicted.
	now = now.Add(2 * time.Second)
	_, ok = c.Get("hello", "default")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0, stats.CurrentSize)
}

func TestLRUEvictionAtCapacity(t *testing.T) {
	c := NewSearchResultCache(3, time.Minute)

	c.Set("a", "s", 1)
	c.Set("b", "s", 2)
	c.Set("c", "s", 3)

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.Get("a", "s")
	require.True(t, ok)

	c.Set("d", "s", 4)

	assert.Equal(t, 3, c.Stats().CurrentSize)

	_, ok = c.Get("b", "s")
	assert.False(t, ok, "least recently used entry should be evicted")
	for _, q := range []string{"a", "c", "d"} {
		_, ok := c.Get(q, "s")
		assert.True(t, ok, "entry %q should survive", q)
	}
}

func TestStatsInvariantHoldsAfterEveryOperation(t *testing.T) {
	c := NewSearchResultCache(2, time.Minute)

	ops := []func(){
		func() { c.Get("a", "s") },
		func() { c.Set("a", "s", 1) },
		func() { c.Get("a", "s") },
		func() { c.Get("b", "s") },
		func() { c.Set("b", "s", 2) },
		func() { c.Set("c", "s", 3) },
		func() { c.Get("c", "s") },
		func() { c.Invalidate("a", "s") },
		func() { c.Get("a", "s") },
	}

	for i, op := range ops {
		op()
		stats := c.Stats()
		assert.Equal(t, stats.TotalRequests, stats.Hits+stats.Misses,
			"invariant broken after operation %d", i)
	}
}

func TestResetStatsKeepsEntries(t *testing.T) {
	c := NewSearchResultCache(2, time.Minute)
	c.Set("hello", "default", "value")
	c.Get("hello", "default")
	c.Get("missing", "default")

	c.ResetStats()

	stats := c.Stats()
	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.Equal(t, 1, stats.CurrentSize, "entries must survive a stats reset")

	_, ok := c.Get("hello", "default")
	assert.True(t, ok)
}

func TestInvalidateAllKeepsCounters(t *testing.T) {
	c := NewSearchResultCache(2, time.Minute)
	c.Set("hello", "default", "value")
	c.Get("hello", "default")

	c.InvalidateAll()

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.TotalRequests)
	assert.Equal(t, 0, stats.CurrentSize)
}

func TestFileMetadataCacheOperations(t *testing.T) {
	c := NewFileMetadataCache(1)

	c.Set("a.txt", map[string]int{"size": 10})
	got, ok := c.Get("a.txt")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"size": 10}, got)

	c.Invalidate("a.txt")
	_, ok = c.Get("a.txt")
	assert.False(t, ok)

	c.Set("b.txt", map[string]int{"size": 5})
	c.InvalidateAll()
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestFileMetadataCacheHasNoExpiry(t *testing.T) {
	c := NewFileMetadataCache(2)

	now := time.Now()
	c.core.now = func() time.Time { return now }

	c.Set("a.txt", "meta")
	now = now.Add(24 * time.Hour)

	_, ok := c.Get("a.txt")
	assert.True(t, ok, "metadata entries never expire by time")
}

func TestFileMetadataCacheCapacity(t *testing.T) {
	c := NewFileMetadataCache(1)
	c.Set("a.txt", 1)
	c.Set("b.txt", 2)

	assert.Equal(t, 1, c.Stats().CurrentSize)
	_, ok := c.Get("a.txt")
	assert.False(t, ok)
	_, ok = c.Get("b.txt")
	assert.True(t, ok)
}

// failingContainer simulates a lower-level fault in the storage
// primitive, unrelated to cache logic.
type failingContainer struct{}

var errContainer = errors.New("container failure")

func (failingContainer) get(string) (entry, bool, error)  { return entry{}, false, errContainer }
func (failingContainer) put(string, entry) error          { return errContainer }
func (failingContainer) delete(string) error              { return errContainer }
func (failingContainer) touch(string) error               { return errContainer }
func (failingContainer) evictOldest() (string, bool, error) { return "", false, errContainer }
func (failingContainer) len() (int, error)                { return 0, errContainer }
func (failingContainer) clear() error                     { return errContainer }

func TestFaultContainment(t *testing.T) {
	c := NewSearchResultCache(1, time.Second)
	c.core.store = failingContainer{}

	// Get degrades to a miss, Set swallows the failure; neither
	// panics or surfaces an error.
	got, ok := c.Get("x", "store")
	assert.False(t, ok)
	assert.Nil(t, got)

	c.Set("x", "store", map[string]string{"status": "success"})
	c.Invalidate("x", "store")
	c.InvalidateAll()

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0, stats.CurrentSize)
}

func TestKeyDeterminism(t *testing.T) {
	assert.Equal(t, Key("query", "store"), Key("query", "store"))
	assert.NotEqual(t, Key("query", "store"), Key("store", "query"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"), "field boundaries must not collide")
	assert.NotEqual(t, Key("query"), Key("query", ""))
}
