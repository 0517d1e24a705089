// ABOUTME: In-memory vector index with registry-based idempotent ingestion
// ABOUTME: Cosine similarity search with insertion-order tie breaking
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/docstack/docstack/internal/models"
)

// ErrDocumentExists reports an Add for a document already in the registry;
// re-ingestion is a no-op rather than a duplication.
var ErrDocumentExists = errors.New("document already processed")

// ErrUnknownDocument reports a removal for a document not in the registry.
var ErrUnknownDocument = errors.New("document not in index")

// Entry is one persisted (vector, chunk) pair.
type Entry struct {
	Chunk  models.Chunk `json:"chunk"`
	Vector []float64    `json:"vector"`
}

// Stats is a read-only snapshot of corpus size.
type Stats struct {
	DocumentCount int `json:"document_count"`
	ChunkCount    int `json:"chunk_count"`
}

// Index owns all chunks and embeddings for the corpus lifetime. One mutex
// guards every mutation, so concurrent adds for the same document are
// serialized and registration is atomic: a document's chunks all land
// together with its registry entry, or not at all.
type Index struct {
	mu        sync.RWMutex
	dir       string
	modelID   string
	dimension int
	entries   []Entry
	docs      map[string]models.Document
	docOrder  []string
}

// New creates an empty index persisting to dir, bound to one embedding
// model identifier.
func New(dir, modelID string) *Index {
	return &Index{
		dir:     dir,
		modelID: modelID,
		docs:    make(map[string]models.Document),
	}
}

// ContainsDocument reports whether a document is already registered.
func (ix *Index) ContainsDocument(docID string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.docs[docID]
	return ok
}

// Add appends all chunk/vector pairs for one document and registers it.
// Validation happens before anything is appended, so a bad batch leaves
// no partial registration behind.
func (ix *Index) Add(doc models.Document, chunks []models.Chunk, vectors [][]float64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.docs[doc.DocID]; ok {
		return ErrDocumentExists
	}
	if len(chunks) == 0 {
		return fmt.Errorf("document %s has no chunks", doc.Name)
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	dimension := ix.dimension
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("vector %d is empty", i)
		}
		if dimension == 0 {
			dimension = len(v)
		}
		if len(v) != dimension {
			return fmt.Errorf("vector %d dimension %d, index dimension %d", i, len(v), dimension)
		}
	}

	for i := range chunks {
		ix.entries = append(ix.entries, Entry{Chunk: chunks[i], Vector: vectors[i]})
	}
	ix.dimension = dimension
	doc.ChunkCount = len(chunks)
	ix.docs[doc.DocID] = doc
	ix.docOrder = append(ix.docOrder, doc.DocID)

	return nil
}

// Search returns the k most similar chunks, highest similarity first.
// Ties break by insertion order (earlier-ingested chunk wins); k is
// clamped to the number of stored chunks.
func (ix *Index) Search(query []float64, k int) []models.SearchResult {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if k <= 0 || len(ix.entries) == 0 {
		return nil
	}

	results := make([]models.SearchResult, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, models.SearchResult{
			Chunk: e.Chunk,
			Score: cosineSimilarity(query, e.Vector),
		})
	}

	// Stable sort preserves insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// RemoveDocument deletes a document's chunks and its registry entry,
// leaving every other document untouched.
func (ix *Index) RemoveDocument(docID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.docs[docID]; !ok {
		return ErrUnknownDocument
	}

	kept := ix.entries[:0]
	for _, e := range ix.entries {
		if e.Chunk.DocID != docID {
			kept = append(kept, e)
		}
	}
	ix.entries = kept

	delete(ix.docs, docID)
	for i, id := range ix.docOrder {
		if id == docID {
			ix.docOrder = append(ix.docOrder[:i], ix.docOrder[i+1:]...)
			break
		}
	}

	return nil
}

// Clear wipes the entire corpus.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries = nil
	ix.docs = make(map[string]models.Document)
	ix.docOrder = nil
	ix.dimension = 0
}

// Stats returns document and chunk counts.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return Stats{
		DocumentCount: len(ix.docs),
		ChunkCount:    len(ix.entries),
	}
}

// Documents lists registered documents in ingestion order.
func (ix *Index) Documents() []models.Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	docs := make([]models.Document, 0, len(ix.docOrder))
	for _, id := range ix.docOrder {
		docs = append(docs, ix.docs[id])
	}
	return docs
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
