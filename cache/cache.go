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
	"sync"
	"time"
)

// lruCache is the shared core behind both cache variants. A single
// mutex serializes every mutating operation on an instance; reads take
// the same lock because a hit mutates recency order and counters.
type lruCache struct {
	mu       sync.Mutex
	store    container
	capacity int
	ttl      time.Duration // zero disables expiry
	now      func() time.Time
	logger   *slog.Logger

	total  int64
	hits   int64
	misses int64
}

func newLRUCache(store container, capacity int, ttl time.Duration, logger *slog.Logger) *lruCache {
	if capacity < 1 {
		capacity = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &lruCache{
		store:    store,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// get looks up a key. Expired entries count as misses and are evicted.
// Container faults degrade to a miss; they never reach the caller.
func (c *lruCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++

	e, ok, err := c.store.get(key)
	if err != nil {
		c.logger.Warn("cache container failed on get, treating as miss", "key", key, "err", err)
		c.misses++
		return nil, false
	}
	if !ok {
		c.misses++
		return nil, false
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		if err := c.store.delete(key); err != nil {
			c.logger.Warn("cache container failed to drop expired entry", "key", key, "err", err)
		}
		c.misses++
		return nil, false
	}

	if err := c.store.touch(key); err != nil {
		c.logger.Warn("cache container failed to update recency", "key", key, "err", err)
	}
	c.hits++
	return e.value, true
}

// set stores a value, evicting least-recently-used entries while the
// container is over capacity. Container faults are swallowed.
func (c *lruCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := entry{value: value, insertedAt: now}
	if c.ttl > 0 {
		e.expiresAt = now.Add(c.ttl)
	}

	if err := c.store.put(key, e); err != nil {
		c.logger.Warn("cache container failed on set, dropping value", "key", key, "err", err)
		return
	}

	for {
		n, err := c.store.len()
		if err != nil {
			c.logger.Warn("cache container failed to report size", "err", err)
			return
		}
		if n <= c.capacity {
			return
		}
		evicted, ok, err := c.store.evictOldest()
		if err != nil || !ok {
			if err != nil {
				c.logger.Warn("cache container failed to evict", "err", err)
			}
			return
		}
		c.logger.Debug("evicted least recently used entry", "key", evicted)
	}
}

func (c *lruCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.delete(key); err != nil {
		c.logger.Warn("cache container failed on invalidate", "key", key, "err", err)
	}
}

func (c *lruCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.clear(); err != nil {
		c.logger.Warn("cache container failed on clear", "err", err)
	}
}

func (c *lruCache) statsSnapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	size, err := c.store.len()
	if err != nil {
		c.logger.Warn("cache container failed to report size", "err", err)
		size = 0
	}
	return Stats{
		TotalRequests: c.total,
		Hits:          c.hits,
		Misses:        c.misses,
		CurrentSize:   size,
	}
}

// resetStats zeroes the counters without touching entries.
func (c *lruCache) resetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total, c.hits, c.misses = 0, 0, 0
}
