// Copyright 2025 Flamehaven
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cache

import (
	"log/slog"
	"time"
)

// SearchResultCache caches search results keyed by the normalized query
// and target store. It is bounded by capacity with least-recently-used
// eviction, and every entry additionally expires ttl after insertion
// regardless of access pattern. A lookup past expiry counts as a miss
// and evicts the stale entry.
type SearchResultCache struct {
	core *lruCache
}

// SearchOption configures a SearchResultCache.
type SearchOption func(*SearchResultCache)

// WithSearchLogger sets a custom logger. Default is slog.Default().
func WithSearchLogger(logger *slog.Logger) SearchOption {
	return func(c *SearchResultCache) {
		if logger != nil {
			c.core.logger = logger
		}
	}
}

// NewSearchResultCache creates a search result cache with the given
// capacity and time-to-live. Capacities below one are raised to one.
func NewSearchResultCache(capacity int, ttl time.Duration, opts ...SearchOption) *SearchResultCache {
	c := &SearchResultCache{
		core: newLRUCache(newLRUContainer(), capacity, ttl, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached result for (query, store), if present and
// unexpired. Every call counts toward total requests and either hits
// or misses.
func (c *SearchResultCache) Get(query, store string) (any, bool) {
	return c.core.get(Key(query, store))
}

// Set stores a result for (query, store). The payload is opaque to the
// cache; it is never inspected or mutated.
func (c *SearchResultCache) Set(query, store string, value any) {
	c.core.set(Key(query, store), value)
}

// Invalidate removes the entry for (query, store). Idempotent.
func (c *SearchResultCache) Invalidate(query, store string) {
	c.core.invalidate(Key(query, store))
}

// InvalidateAll removes every entry, leaving counters intact.
func (c *SearchResultCache) InvalidateAll() {
	c.core.invalidateAll()
}

// Stats returns a consistent snapshot of the cache's accounting.
func (c *SearchResultCache) Stats() Stats {
	return c.core.statsSnapshot()
}

// ResetStats zeroes the counters without clearing entries.
func (c *SearchResultCache) ResetStats() {
	c.core.resetStats()
}
