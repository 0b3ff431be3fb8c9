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

// Registered cache names as they appear in statistics exports.
const (
	SearchCacheName = "search_cache"
	FileCacheName   = "file_cache"
)

// Registry holds at most one instance of each cache type for a
// process. It is an explicit handle: construct it once at startup and
// pass it to every component that needs cache access.
type Registry struct {
	mu     sync.Mutex
	logger *slog.Logger
	search *SearchResultCache
	file   *FileMetadataCache
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger handed to caches the registry
// creates. Default is slog.Default().
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry. Caches are created lazily on
// first access.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SearchCache returns the process-wide search result cache, creating it
// on first call with the given configuration. The first caller's
// parameters fix the instance for the registry's lifetime; later calls
// return the same instance and ignore their arguments. Safe for
// concurrent first callers.
func (r *Registry) SearchCache(capacity int, ttl time.Duration) *SearchResultCache {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.search == nil {
		r.search = NewSearchResultCache(capacity, ttl,
			WithSearchLogger(r.logger.With("cache", SearchCacheName)))
	}
	return r.search
}

// FileCache returns the process-wide file metadata cache, creating it
// on first call. Idempotent with the same first-call-wins semantics as
// SearchCache.
func (r *Registry) FileCache(capacity int) *FileMetadataCache {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		r.file = NewFileMetadataCache(capacity,
			WithMetadataLogger(r.logger.With("cache", FileCacheName)))
	}
	return r.file
}

// AllStats returns a snapshot of every registered cache's statistics,
// keyed by cache name. Caches not yet created are absent.
func (r *Registry) AllStats() map[string]Stats {
	r.mu.Lock()
	search, file := r.search, r.file
	r.mu.Unlock()

	stats := make(map[string]Stats, 2)
	if search != nil {
		stats[SearchCacheName] = search.Stats()
	}
	if file != nil {
		stats[FileCacheName] = file.Stats()
	}
	return stats
}

// ResetAll clears contents and zeroes counters for every registered
// cache. Used for test isolation and operational reset.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	search, file := r.search, r.file
	r.mu.Unlock()

	if search != nil {
		search.InvalidateAll()
		search.ResetStats()
	}
	if file != nil {
		file.InvalidateAll()
		file.ResetStats()
	}
}
