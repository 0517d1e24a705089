// ABOUTME: Search and answer result types for the query path
// ABOUTME: Defines SearchResult, Source, and Answer structures
package models

// SearchResult is one chunk returned by a similarity search.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Source is a citation attached to an answer: where a retrieved passage
// came from, with a short excerpt for display.
type Source struct {
	Document string `json:"document"`
	Page     int    `json:"page"`
	Excerpt  string `json:"excerpt"`
}

// Answer is the result of one query: the generated answer text plus the
// retrieved sources that were actually consulted. The source list comes
// from the retrieval step, not from the model's own citations. Never
// persisted.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}
