package storage

import (
	"testing"
	"time"

	"github.com/flamehaven/filesearch/core"
	"github.com/mus-format/mus-go/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMarshalRoundTrip(t *testing.T) {
	doc := &core.Document{
		Id:         7,
		Name:       "note.txt",
		MimeType:   "text/plain",
		SizeBytes:  5,
		Contents:   "hello",
		Vector:     []float32{0.5, -0.5},
		UploadedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	got, err := UnmarshalDocument(MarshalDocument(doc))
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestUnmarshalDocumentTruncatedInput(t *testing.T) {
	_, err := UnmarshalDocument(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalDocumentCorruptVectorLength(t *testing.T) {
	doc := &core.Document{Id: 1, Name: "x.txt", UploadedAt: time.Unix(0, 0).UTC()}
	bs := MarshalDocument(doc)

	// Rewrite the empty vector's length byte to the zigzag encoding
	// of -1, as a bit flip in the value log would.
	vecLenIdx := len(bs) - varint.Int64.Size(doc.UploadedAt.UnixMicro()) - 1
	bs[vecLenIdx] = 0x01

	_, err := UnmarshalDocument(bs)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
