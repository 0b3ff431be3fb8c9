package filesearch

import (
	"context"
	"testing"
	"time"

	"github.com/flamehaven/filesearch/ai/mock"
	"github.com/flamehaven/filesearch/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	svc, err := New("", WithInMemory(), WithEmbedder(embedder))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	return svc
}

func TestServiceUploadAndSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pipeline, err := svc.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	added, err := pipeline.Ingest(ctx, "notes.txt", "text/plain", "meeting notes about roadmap")
	require.NoError(t, err)

	// Wait for the async embedding before searching.
	require.Eventually(t, func() bool {
		doc, err := svc.Repository().GetDocument(ctx, added.Id)
		return err == nil && len(doc.Vector) > 0
	}, 5*time.Second, 10*time.Millisecond)

	searcher, err := svc.NewSearcher()
	require.NoError(t, err)

	results, err := searcher.Search(ctx, "meeting notes about roadmap", "default", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "notes.txt", results[0].Document.Name)
}

func TestServiceCacheStats(t *testing.T) {
	svc := newTestService(t)

	stats := svc.CacheStats()
	require.Contains(t, stats, cache.SearchCacheName)
	require.Contains(t, stats, cache.FileCacheName)

	searcher, err := svc.NewSearcher()
	require.NoError(t, err)

	ctx := context.Background()
	_, err = searcher.Search(ctx, "anything at all", "default", 10)
	require.NoError(t, err)
	_, err = searcher.Search(ctx, "anything at all", "default", 10)
	require.NoError(t, err)

	stats = svc.CacheStats()
	searchStats := stats[cache.SearchCacheName]
	assert.Equal(t, int64(2), searchStats.TotalRequests)
	assert.Equal(t, int64(1), searchStats.Hits)
	assert.Equal(t, int64(1), searchStats.Misses)

	svc.ResetCaches()
	stats = svc.CacheStats()
	assert.Zero(t, stats[cache.SearchCacheName].TotalRequests)
	assert.Zero(t, stats[cache.SearchCacheName].CurrentSize)
}

func TestServiceSharedCacheRegistry(t *testing.T) {
	svc := newTestService(t)

	// Pipelines and searchers share the registry's singletons.
	first := svc.Caches().SearchCache(1, time.Second)
	second := svc.Caches().SearchCache(99, time.Hour)
	assert.Same(t, first, second)
}
