package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/flamehaven/filesearch/ai"
	"github.com/flamehaven/filesearch/cache"
	"github.com/flamehaven/filesearch/core"
	"github.com/flamehaven/filesearch/fault"
	"github.com/flamehaven/filesearch/storage"
	"github.com/flamehaven/filesearch/validate"
	"github.com/panjf2000/ants/v2"
)

// Defaults for async embedding retries.
const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 500 * time.Millisecond
)

// defaultMaxFileSizeMB bounds uploads unless overridden per pipeline.
const defaultMaxFileSizeMB = 10

// Pipeline orchestrates validation, storage, and embedding of uploaded
// documents.
type Pipeline struct {
	repository    storage.DocumentRepository
	embedder      ai.Embedder
	pool          *ants.Pool
	fileCache     *cache.FileMetadataCache
	maxSizeMB     int
	customMIMEs   []string
	retryAttempts int
	retryDelay    time.Duration
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithFileCache attaches a file metadata cache. Uploads refresh the
// entry for their filename.
func WithFileCache(fileCache *cache.FileMetadataCache) Option {
	return func(p *Pipeline) error {
		p.fileCache = fileCache
		return nil
	}
}

// WithMaxFileSizeMB overrides the upload size limit in mebibytes.
func WithMaxFileSizeMB(maxSizeMB int) Option {
	return func(p *Pipeline) error {
		p.maxSizeMB = maxSizeMB
		return nil
	}
}

// WithCustomMIMETypes extends the accepted MIME type set for this pipeline.
func WithCustomMIMETypes(mimeTypes []string) Option {
	return func(p *Pipeline) error {
		p.customMIMEs = mimeTypes
		return nil
	}
}

// WithRetry overrides the retry policy for async embedding.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.retryAttempts = attempts
		p.retryDelay = baseDelay
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	repository storage.DocumentRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:    repository,
		embedder:      embedder,
		pool:          pool,
		maxSizeMB:     defaultMaxFileSizeMB,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest validates and stores a document, then embeds it asynchronously.
// Errors during async embedding are logged but do not fail the upload.
func (p *Pipeline) Ingest(ctx context.Context, filename, mimeType, contents string) (*core.Document, error) {
	cleanName, mimeOK, err := validate.UploadFile(filename, int64(len(contents)), mimeType, p.maxSizeMB)
	if err != nil {
		return nil, err
	}
	if !mimeOK && !p.customMIMEAllowed(mimeType) {
		return nil, fault.UnsupportedFileType(mimeType, validate.AllowedMIMETypes())
	}

	doc := &core.Document{
		Name:      cleanName,
		MimeType:  mimeType,
		SizeBytes: int64(len(contents)),
		Contents:  contents,
	}

	added, err := p.repository.AddDocument(ctx, doc)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return nil, fault.ResourceConflict("document", cleanName, "a document with this name already exists")
		}
		return nil, err
	}

	p.logger.Info("document stored", "name", added.Name, "id", added.Id, "bytes", added.SizeBytes)

	if p.fileCache != nil {
		p.fileCache.Set(added.Name, added.Metadata())
	}

	id := added.Id
	submitErr := p.pool.Submit(func() {
		if err := p.embedDocument(context.Background(), id); err != nil {
			p.logger.Error("error embedding document", "id", id, "err", err)
		}
	})
	if submitErr != nil {
		p.logger.Error("error submitting embedding task", "id", id, "err", submitErr)
	}

	return added, nil
}

// embedDocument generates and stores the embedding for one document,
// retrying transient embedder failures.
func (p *Pipeline) embedDocument(ctx context.Context, id core.ID) error {
	doc, err := p.repository.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	var vector []float32
	err = RetryWithBackoff(ctx, func() error {
		var embedErr error
		vector, embedErr = p.embedder.EmbedText(ctx, doc.Contents)
		return embedErr
	}, p.retryAttempts, p.retryDelay)
	if err != nil {
		return err
	}

	return p.repository.UpdateVector(ctx, id, vector)
}

func (p *Pipeline) customMIMEAllowed(mimeType string) bool {
	if len(p.customMIMEs) == 0 {
		return false
	}
	return validate.MIMEType(mimeType, p.customMIMEs)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
