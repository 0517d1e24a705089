// ABOUTME: Document represents one ingested PDF in the corpus
// ABOUTME: Identified by content hash, immutable after ingestion
package models

import "time"

// Document is one ingested PDF. The DocID is derived from the file
// content (sha256, truncated), so re-uploading the same bytes under a
// different name is still recognized as already processed.
type Document struct {
	DocID      string    `json:"doc_id"`
	Name       string    `json:"name"`
	PageCount  int       `json:"page_count"`
	ChunkCount int       `json:"chunk_count"`
	IngestedAt time.Time `json:"ingested_at"`
}
