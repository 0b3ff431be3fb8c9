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


package filesearch

import (
	"io"
	"log/slog"
	"time"

	"github.com/flamehaven/filesearch/ai"
	"github.com/flamehaven/filesearch/ai/openai"
	"github.com/flamehaven/filesearch/cache"
	"github.com/flamehaven/filesearch/ingestion"
	"github.com/flamehaven/filesearch/search"
	"github.com/flamehaven/filesearch/storage"
	"github.com/flamehaven/filesearch/storage/badger"
)

// Cache defaults for a freshly opened service.
const (
	defaultSearchCacheCapacity = 128
	defaultSearchCacheTTL      = 5 * time.Minute
	defaultFileCacheCapacity   = 256
)

// Service is the top-level handle over storage, embedding, caching, and
// the search and ingestion pipelines.
type Service struct {
	backend  *badger.Backend
	repo     storage.DocumentRepository
	embedder ai.Embedder
	caches   *cache.Registry
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig            *ai.Config
	embedder            ai.Embedder
	inMemory            bool
	searchCacheCapacity int
	searchCacheTTL      time.Duration
	fileCacheCapacity   int
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithEmbedder injects a pre-built embedder, bypassing the AI config.
func WithEmbedder(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithInMemory opens the storage backend in memory. Data does not
// survive Close.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithSearchCache overrides the search cache capacity and TTL.
func WithSearchCache(capacity int, ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.searchCacheCapacity = capacity
		o.searchCacheTTL = ttl
	}
}

// WithFileCache overrides the file metadata cache capacity.
func WithFileCache(capacity int) ServiceOption {
	return func(o *serviceOptions) {
		o.fileCacheCapacity = capacity
	}
}

// New opens a service rooted at filePath.
func New(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:            ai.DefaultConfig(),
		searchCacheCapacity: defaultSearchCacheCapacity,
		searchCacheTTL:      defaultSearchCacheTTL,
		fileCacheCapacity:   defaultFileCacheCapacity,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	caches := cache.NewRegistry()
	caches.SearchCache(options.searchCacheCapacity, options.searchCacheTTL)
	caches.FileCache(options.fileCacheCapacity)

	return &Service{
		backend:  backend,
		repo:     repo,
		embedder: embedder,
		caches:   caches,
		logger:   slog.Default(),
	}, nil
}

// Close releases the repository and storage backend.
func (s *Service) Close() error {
	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository returns the document repository.
func (s *Service) Repository() storage.DocumentRepository {
	return s.repo
}

// Caches returns the cache registry shared by the service's pipelines.
func (s *Service) Caches() *cache.Registry {
	return s.caches
}

// NewSearcher creates a searcher wired to the service's repository,
// embedder, and search result cache.
func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	searchCache := s.caches.SearchCache(defaultSearchCacheCapacity, defaultSearchCacheTTL)
	base := []search.Option{search.WithResultCache(searchCache)}
	return search.NewSearcher(s.repo, s.embedder, append(base, opts...)...)
}

// NewPipeline creates an ingestion pipeline wired to the service's
// repository, embedder, and file metadata cache.
func (s *Service) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	fileCache := s.caches.FileCache(defaultFileCacheCapacity)
	base := []ingestion.Option{ingestion.WithFileCache(fileCache)}
	return ingestion.NewPipeline(s.repo, s.embedder, append(base, opts...)...)
}

// NewReindexer creates a reindexer over the service's repository and
// embedder. progress may be nil to discard output.
func (s *Service) NewReindexer(config *ingestion.ReindexConfig, progress io.Writer) (*ingestion.Reindexer, error) {
	return ingestion.NewReindexer(s.repo, s.embedder, config, progress)
}

// CacheStats returns a snapshot of every cache's counters, keyed by
// cache name.
func (s *Service) CacheStats() map[string]cache.Stats {
	return s.caches.AllStats()
}

// ResetCaches clears all cached entries and zeroes the counters.
func (s *Service) ResetCaches() {
	s.caches.ResetAll()
}
