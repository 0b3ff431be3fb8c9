package badger

import (
	"fmt"

	"github.com/flamehaven/filesearch/core"
)

// Key prefixes for different data types
const (
	documentPrefix     = "doc"
	documentNamePrefix = "docname"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeDocumentNameKey generates a key for the name index.
// Format: prefix:name
func makeDocumentNameKey(name string) []byte {
	return []byte(documentNamePrefix + ":" + name)
}
