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


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities, generated from content
// hashing so identical content always produces the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using
// BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is an uploaded file registered with the search index. It may
// be enriched with an embedding vector after ingestion.
type Document struct {
	Id         ID
	Name       string // Cleaned base filename, unique within the store
	MimeType   string
	SizeBytes  int64
	Contents   string
	Vector     []float32 // Embedding for semantic search (populated asynchronously)
	UploadedAt time.Time
}

// Metadata returns the cacheable metadata view of the document.
func (d *Document) Metadata() FileMetadata {
	return FileMetadata{
		Id:         d.Id,
		Name:       d.Name,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		UploadedAt: d.UploadedAt,
	}
}

// FileMetadata is the lightweight per-file record kept in the metadata
// cache and returned by listing operations.
type FileMetadata struct {
	Id         ID
	Name       string
	MimeType   string
	SizeBytes  int64
	UploadedAt time.Time
}

// SearchResult is a document matched by a search, with its relevance
// score.
type SearchResult struct {
	Document *Document
	Score    float32
}
