package search

import (
	"context"
	"log/slog"
	"slices"

	"github.com/flamehaven/filesearch/ai"
	"github.com/flamehaven/filesearch/cache"
	"github.com/flamehaven/filesearch/core"
	"github.com/flamehaven/filesearch/fault"
	"github.com/flamehaven/filesearch/storage"
	"github.com/flamehaven/filesearch/validate"
)

// defaultMinSimilarity is the cosine similarity floor for semantic matches.
const defaultMinSimilarity = 0.60

// verbatimBoost is added to the score of results whose contents contain
// every non-stop-word of the query.
const verbatimBoost = 0.10

// Searcher provides validated, cached semantic search over documents.
type Searcher struct {
	repository    storage.DocumentRepository
	embedder      ai.Embedder
	results       *cache.SearchResultCache
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithResultCache attaches a search result cache.
// Without one, every search goes to the embedder and the repository.
func WithResultCache(results *cache.SearchResultCache) Option {
	return func(s *Searcher) error {
		s.results = results
		return nil
	}
}

// WithMinSimilarity overrides the similarity floor for semantic matches.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	repository storage.DocumentRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repository:    repository,
		embedder:      embedder,
		minSimilarity: defaultMinSimilarity,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds documents relevant to the query in the named store.
// Returns up to maxResults results, ranked by relevance score.
func (s *Searcher) Search(ctx context.Context, query, store string, maxResults int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, store, maxResults, nil)
}

// SearchWithMonitor runs a search with monitoring. The monitor receives
// callbacks at each stage of the pipeline.
// Returns up to maxResults results, ranked by relevance score.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query, store string, maxResults int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	sanitized, limit, err := validate.SearchRequest(query, maxResults)
	if err != nil {
		return nil, err
	}

	monitor.Start(sanitized)

	if s.results != nil {
		if value, ok := s.results.Get(sanitized, store); ok {
			if cached, ok := value.([]*core.SearchResult); ok {
				s.logger.Debug("search cache hit", "query", sanitized, "store", store)
				monitor.CacheHit(sanitized, store)
				monitor.Finish(cached)
				return cached, nil
			}
		}
	}

	vector, err := s.embedder.EmbedText(ctx, sanitized)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", sanitized, "err", err)
		return nil, fault.ExternalAPIError("embedding-service", err.Error(), 0)
	}
	monitor.AfterEmbedding(vector)

	matches, err := s.repository.FindSimilar(ctx, vector, s.minSimilarity, limit)
	if err != nil {
		s.logger.Error("error querying for similar documents", "err", err)
		return nil, err
	}
	monitor.AfterSimilaritySearch(matches)

	// Documents containing every meaningful query word outrank
	// purely semantic neighbors.
	for _, match := range matches {
		if containsAllQueryWords(match.Document.Contents, sanitized) {
			match.Score += verbatimBoost
			if match.Score > 1.0 {
				match.Score = 1.0
			}
			monitor.VerbatimBoost(match.Document)
		}
	}
	slices.SortFunc(matches, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	if s.results != nil {
		s.results.Set(sanitized, store, matches)
	}

	monitor.Finish(matches)
	return matches, nil
}
