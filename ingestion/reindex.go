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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/flamehaven/filesearch/ai"
	"github.com/flamehaven/filesearch/core"
	"github.com/flamehaven/filesearch/storage"
)

// ReindexConfig holds configuration for a full reindex operation.
type ReindexConfig struct {
	// BatchSize is the number of documents to embed in each batch
	BatchSize int

	// MaxRetries is the maximum number of retry attempts for embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultReindexConfig returns a ReindexConfig with sensible defaults.
func DefaultReindexConfig() *ReindexConfig {
	return &ReindexConfig{
		BatchSize:  100,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Reindexer re-embeds every stored document with the configured embedder.
// Useful after switching embedding models, when existing vectors no
// longer live in the same space as new queries.
type Reindexer struct {
	repo     storage.DocumentRepository
	embedder ai.Embedder
	config   *ReindexConfig
	progress io.Writer
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(repo storage.DocumentRepository, embedder ai.Embedder, config *ReindexConfig, progress io.Writer) (*Reindexer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultReindexConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Reindexer{
		repo:     repo,
		embedder: embedder,
		config:   config,
		progress: progress,
	}, nil
}

// Run re-embeds all documents in batches. Returns the number of
// documents processed.
func (r *Reindexer) Run(ctx context.Context) (int, error) {
	metas, err := r.repo.ListDocuments(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to list documents: %w", err)
	}

	if len(metas) == 0 {
		fmt.Fprintf(r.progress, "No documents found (0 documents)\n")
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d documents (batch size: %d)\n",
		len(metas), r.config.BatchSize)

	start := time.Now()
	processed := 0

	for batchStart := 0; batchStart < len(metas); batchStart += r.config.BatchSize {
		batchEnd := batchStart + r.config.BatchSize
		if batchEnd > len(metas) {
			batchEnd = len(metas)
		}

		docs := make([]*core.Document, 0, batchEnd-batchStart)
		for _, meta := range metas[batchStart:batchEnd] {
			doc, err := r.repo.GetDocumentByName(ctx, meta.Name)
			if err != nil {
				return processed, fmt.Errorf("failed to load document %q: %w", meta.Name, err)
			}
			docs = append(docs, doc)
		}

		if err := r.processBatch(ctx, docs); err != nil {
			return processed, err
		}

		processed += len(docs)
		fmt.Fprintf(r.progress, "Progress: %d/%d documents\n", processed, len(metas))
	}

	elapsed := time.Since(start)
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d documents in %v\n",
		processed, elapsed.Round(time.Second))

	return processed, nil
}

// processBatch embeds a batch of documents and stores the new vectors.
// Vectors are normalized to unit length for cosine similarity.
func (r *Reindexer) processBatch(ctx context.Context, docs []*core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Contents
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = r.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.config.MaxRetries, err)
	}

	if len(vectors) != len(docs) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(docs), len(vectors))
	}

	for i, doc := range docs {
		if err := r.repo.UpdateVector(ctx, doc.Id, NormalizeVector(vectors[i])); err != nil {
			return fmt.Errorf("failed to update vector for %q: %w", doc.Name, err)
		}
	}

	return nil
}
