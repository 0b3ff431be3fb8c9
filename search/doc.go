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


// Package search provides validated, cached semantic search over stored
// documents.
//
// The Searcher type runs a multi-stage pipeline for each query:
//   - Query validation and sanitization
//   - Result cache lookup keyed by the sanitized query and store
//   - Semantic search using vector embeddings
//   - Verbatim keyword boosting with stop-word filtering
//
// Results are ranked by similarity score and cached for subsequent
// identical queries.
package search
