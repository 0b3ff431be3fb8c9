package ingestion

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/flamehaven/filesearch/ai/mock"
	"github.com/flamehaven/filesearch/cache"
	"github.com/flamehaven/filesearch/core"
	"github.com/flamehaven/filesearch/fault"
	"github.com/flamehaven/filesearch/storage"
	"github.com/flamehaven/filesearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.DocumentRepository) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder(), opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo
}

func TestNewPipeline(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(repo, mock.NewMockEmbedder())
		require.NoError(t, err)
		defer p.Release()
		assert.NotNil(t, p)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockEmbedder())
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("invalid retry attempts", func(t *testing.T) {
		_, err := NewPipeline(repo, mock.NewMockEmbedder(), WithRetry(0, time.Millisecond))
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})
}

func TestIngestStoresDocument(t *testing.T) {
	pipeline, repo := newTestPipeline(t)
	ctx := context.Background()

	added, err := pipeline.Ingest(ctx, "report.txt", "text/plain", "quarterly numbers")
	require.NoError(t, err)
	assert.Equal(t, "report.txt", added.Name)
	assert.Equal(t, int64(len("quarterly numbers")), added.SizeBytes)

	stored, err := repo.GetDocumentByName(ctx, "report.txt")
	require.NoError(t, err)
	assert.Equal(t, added.Id, stored.Id)
}

func TestIngestCleansPathPrefix(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	added, err := pipeline.Ingest(context.Background(), "  reports/summary.txt  ", "text/plain", "contents")
	require.NoError(t, err)
	assert.Equal(t, "summary.txt", added.Name)
}

func TestIngestValidationFaults(t *testing.T) {
	pipeline, _ := newTestPipeline(t, WithMaxFileSizeMB(1))
	ctx := context.Background()

	t.Run("path traversal", func(t *testing.T) {
		_, err := pipeline.Ingest(ctx, "../etc/passwd", "text/plain", "x")
		var f *fault.Fault
		require.True(t, errors.As(err, &f))
		assert.Equal(t, fault.CodeInvalidFilename, f.Code)
	})

	t.Run("oversized file", func(t *testing.T) {
		big := strings.Repeat("a", 1<<20+1)
		_, err := pipeline.Ingest(ctx, "big.txt", "text/plain", big)
		var f *fault.Fault
		require.True(t, errors.As(err, &f))
		assert.Equal(t, fault.CodeFileSizeExceeded, f.Code)
	})

	t.Run("unsupported mime type", func(t *testing.T) {
		_, err := pipeline.Ingest(ctx, "movie.mkv", "video/x-matroska", "x")
		var f *fault.Fault
		require.True(t, errors.As(err, &f))
		assert.Equal(t, fault.CodeUnsupportedFileType, f.Code)
	})
}

func TestIngestCustomMIMETypes(t *testing.T) {
	pipeline, _ := newTestPipeline(t, WithCustomMIMETypes([]string{"application/x-custom"}))

	_, err := pipeline.Ingest(context.Background(), "data.bin", "application/x-custom", "payload")
	require.NoError(t, err)
}

func TestIngestDuplicateName(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, "dup.txt", "text/plain", "first")
	require.NoError(t, err)

	_, err = pipeline.Ingest(ctx, "dup.txt", "text/plain", "second")
	var f *fault.Fault
	require.True(t, errors.As(err, &f))
	assert.Equal(t, fault.CodeResourceConflict, f.Code)
	assert.Equal(t, 409, f.Status())
}

func TestIngestEmbedsAsynchronously(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0.1, 0.2, 0.3}, nil
	}

	pipeline, err := NewPipeline(repo, embedder)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	added, err := pipeline.Ingest(ctx, "async.txt", "text/plain", "embed me")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		doc, err := repo.GetDocument(ctx, added.Id)
		return err == nil && len(doc.Vector) == 3
	}, 5*time.Second, 10*time.Millisecond, "document should gain a vector")
}

func TestIngestEmbeddingFailureDoesNotFailUpload(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	var calls atomic.Int64
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		calls.Add(1)
		return nil, errors.New("embedder down")
	}

	pipeline, err := NewPipeline(repo, embedder, WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	added, err := pipeline.Ingest(ctx, "broken.txt", "text/plain", "contents")
	require.NoError(t, err, "upload must succeed even if embedding fails")

	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, 5*time.Second, 10*time.Millisecond)

	doc, err := repo.GetDocument(ctx, added.Id)
	require.NoError(t, err)
	assert.Empty(t, doc.Vector)
}

func TestIngestUpdatesFileCache(t *testing.T) {
	fileCache := cache.NewFileMetadataCache(16)
	pipeline, _ := newTestPipeline(t, WithFileCache(fileCache))

	added, err := pipeline.Ingest(context.Background(), "cached.txt", "text/plain", "contents")
	require.NoError(t, err)

	value, ok := fileCache.Get("cached.txt")
	require.True(t, ok)
	meta, ok := value.(core.FileMetadata)
	require.True(t, ok)
	assert.Equal(t, added.Name, meta.Name)
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("succeeds after retries", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		wantErr := errors.New("persistent")
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			return wantErr
		}, 3, time.Millisecond)
		assert.Equal(t, wantErr, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoff(cancelled, func() error { return errors.New("x") }, 3, time.Minute)
		assert.Equal(t, context.Canceled, err)
	})
}

func TestReindex(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		_, err := repo.AddDocument(ctx, &core.Document{Name: name, Contents: "contents of " + name})
		require.NoError(t, err)
	}

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{3, 4, 0}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	reindexer, err := NewReindexer(repo, embedder, &ReindexConfig{
		BatchSize:  2,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}, &progress)
	require.NoError(t, err)

	processed, err := reindexer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Contains(t, progress.String(), "Reindex complete")

	// Vectors are stored normalized.
	doc, err := repo.GetDocumentByName(ctx, "one.txt")
	require.NoError(t, err)
	require.Len(t, doc.Vector, 3)
	assert.InDelta(t, 0.6, doc.Vector[0], 0.001)
	assert.InDelta(t, 0.8, doc.Vector[1], 0.001)
}

func TestReindexEmpty(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	var progress bytes.Buffer
	reindexer, err := NewReindexer(repo, mock.NewMockEmbedder(), nil, &progress)
	require.NoError(t, err)

	processed, err := reindexer.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Contains(t, progress.String(), "No documents")
}

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 0.001)
		assert.InDelta(t, 0.8, v[1], 0.001)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})
}
