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

// Stats is a point-in-time snapshot of a cache's accounting. The
// counters are monotonic until an explicit ResetStats; CurrentSize is
// recomputed from the container at snapshot time rather than
// accumulated.
type Stats struct {
	TotalRequests int64 `json:"total_requests"`
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	CurrentSize   int   `json:"current_size"`
}

// HitRate returns the fraction of requests served from cache, between
// 0 and 1. Returns 0 when there have been no requests.
func (s Stats) HitRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalRequests)
}
