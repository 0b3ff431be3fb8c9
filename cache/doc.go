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


// Package cache provides the bounded in-memory caches that sit in front
// of the external search provider.
//
// Two variants share one contract shape: SearchResultCache combines
// least-recently-used eviction with a per-entry time-to-live, while
// FileMetadataCache is capacity-bound only and relies on explicit
// invalidation by the owner of the underlying file.
//
// Both are safe for concurrent use and keep hit/miss accounting with
// the invariant hits + misses == total requests. A cache must never
// turn an otherwise-successful request into a hard failure: faults in
// the underlying container degrade Get to a miss and are swallowed by
// Set.
//
// The Registry hands out lazily created singleton instances and
// aggregates their statistics; it replaces process-global cache state
// with an explicit handle constructed once at startup.
package cache
