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

import "log/slog"

// FileMetadataCache caches file metadata keyed by filename. It is
// capacity-bound with least-recently-used eviction but carries no
// expiry: metadata is invalidated explicitly by its owner when the
// underlying file changes, not by time.
type FileMetadataCache struct {
	core *lruCache
}

// MetadataOption configures a FileMetadataCache.
type MetadataOption func(*FileMetadataCache)

// WithMetadataLogger sets a custom logger. Default is slog.Default().
func WithMetadataLogger(logger *slog.Logger) MetadataOption {
	return func(c *FileMetadataCache) {
		if logger != nil {
			c.core.logger = logger
		}
	}
}

// NewFileMetadataCache creates a metadata cache with the given
// capacity. Capacities below one are raised to one.
func NewFileMetadataCache(capacity int, opts ...MetadataOption) *FileMetadataCache {
	c := &FileMetadataCache{
		core: newLRUCache(newLRUContainer(), capacity, 0, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached metadata for a filename, if present.
func (c *FileMetadataCache) Get(filename string) (any, bool) {
	return c.core.get(filename)
}

// Set stores metadata for a filename, replacing any previous entry.
func (c *FileMetadataCache) Set(filename string, value any) {
	c.core.set(filename, value)
}

// Invalidate removes the entry for a filename. Idempotent.
func (c *FileMetadataCache) Invalidate(filename string) {
	c.core.invalidate(filename)
}

// InvalidateAll removes every entry, leaving counters intact.
func (c *FileMetadataCache) InvalidateAll() {
	c.core.invalidateAll()
}

// Stats returns a consistent snapshot of the cache's accounting.
func (c *FileMetadataCache) Stats() Stats {
	return c.core.statsSnapshot()
}

// ResetStats zeroes the counters without clearing entries.
func (c *FileMetadataCache) ResetStats() {
	c.core.resetStats()
}
