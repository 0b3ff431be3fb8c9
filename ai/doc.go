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


// Package ai provides abstractions for the embedding services used by
// the search and ingestion layers.
//
// The package defines the Embedder interface and its configuration.
// Business logic depends on the interface rather than a concrete
// implementation, so embedding backends can be swapped without touching
// callers.
//
// Two implementation sub-packages are included:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors (openai.NewEmbedder) return the interface type to
// enforce abstraction. The mock constructor returns a concrete type so
// tests can inject behavior and inspect call counts.
package ai
