// ABOUTME: Chunk is the unit of retrieval, a bounded overlapping text slice
// ABOUTME: Carries its owning document, source page, and sequence index
package models

import "fmt"

// Chunk is one retrievable passage of a document. Text is a contiguous
// substring of the document's extracted text; adjacent chunks overlap at
// their boundaries. Chunks are immutable once created.
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	DocID   string `json:"doc_id"`
	DocName string `json:"doc_name"`
	Page    int    `json:"page"`
	Seq     int    `json:"seq"`
	Text    string `json:"text"`
}

// ChunkID builds the deterministic chunk identifier for a document and
// sequence index.
func ChunkID(docID string, seq int) string {
	return fmt.Sprintf("%s:%d", docID, seq)
}
