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


package storage

import (
	"context"

	"github.com/flamehaven/filesearch/core"
)

// DocumentRepository provides operations for managing indexed documents.
type DocumentRepository interface {
	// AddDocument stores a new document. The ID is derived from the
	// document's name and contents; UploadedAt is set if zero.
	// Returns ErrDuplicateName if a document with the same name exists.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByName retrieves a document by its cleaned filename.
	// Returns ErrNotFound if it does not exist.
	GetDocumentByName(ctx context.Context, name string) (*core.Document, error)

	// ListDocuments returns metadata for up to limit documents,
	// ordered by name. A non-positive limit returns all documents.
	ListDocuments(ctx context.Context, limit int) ([]core.FileMetadata, error)

	// DeleteDocument removes a document and its indices by ID.
	// Returns ErrNotFound if it does not exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// UpdateVector replaces a document's embedding vector.
	// Returns ErrNotFound if the document does not exist.
	UpdateVector(ctx context.Context, id core.ID, vector []float32) error

	// FindSimilar returns documents whose embedding similarity to the
	// given vector is at least minSimilarity, best matches first, up
	// to limit. Documents without embeddings are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// Close releases repository resources.
	Close() error
}
