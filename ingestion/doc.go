// Package ingestion provides pipeline orchestration for document uploads.
//
// The Pipeline type manages the upload workflow for documents, including:
//   - Validating filenames, sizes, and MIME types
//   - Adding documents to storage
//   - Generating embeddings asynchronously
//   - Keeping the file metadata cache current
//
// Embedding is performed concurrently using a worker pool. Errors during
// async processing are logged but do not fail the upload operation.
package ingestion
